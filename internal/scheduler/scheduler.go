// Package scheduler runs the lookup history retention job.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/imcoder44/FootprintX/internal/metric"
)

// Pruner deletes lookup records started before a cutoff.
type Pruner interface {
	PruneLookups(ctx context.Context, before time.Time) (int64, error)
}

// Scheduler prunes lookup history on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	ctx       context.Context
	cancel    context.CancelFunc
	pruner    Pruner
	schedule  string
	retention time.Duration
	metrics   *metric.Metrics
	now       func() time.Time
}

// New creates a scheduler. A zero retention disables pruning.
func New(pruner Pruner, schedule string, retention time.Duration, metrics *metric.Metrics) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		ctx:       ctx,
		cancel:    cancel,
		pruner:    pruner,
		schedule:  schedule,
		retention: retention,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Start registers the retention job and starts the cron runner.
func (s *Scheduler) Start() error {
	if s.pruner == nil || s.retention <= 0 {
		log.Printf("WARN: history retention disabled, scheduler not started")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.Prune(s.ctx); err != nil {
			log.Printf("ERROR: history prune failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	log.Printf("INFO: history retention scheduled (%s, keep %s)", s.schedule, s.retention)
	return nil
}

// Prune removes lookup records older than the retention period.
func (s *Scheduler) Prune(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	n, err := s.pruner.PruneLookups(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.metrics.RecordHistoryPruned(n)
	if n > 0 {
		log.Printf("INFO: pruned %d lookup records older than %s", n, cutoff.Format(time.RFC3339))
	}
	return n, nil
}

// Stop stops the cron runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
}

// IsRunning reports whether the retention job is registered.
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
