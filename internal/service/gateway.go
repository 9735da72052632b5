package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/imcoder44/FootprintX/internal/classifier"
	"github.com/imcoder44/FootprintX/internal/domain"
	"github.com/imcoder44/FootprintX/internal/metric"
	"github.com/imcoder44/FootprintX/internal/repository"
	"github.com/imcoder44/FootprintX/internal/session"
)

// Stream outcomes reported to metrics.
const (
	outcomeCompleted    = "completed"
	outcomeDisconnected = "disconnected"
	outcomeWriteFailed  = "write_failed"
)

// Gateway binds submitted queries to sessions and streams their runs.
type Gateway struct {
	sessions *session.Registry
	runner   Runner
	history  repository.Store
	metrics  *metric.Metrics
}

// NewGateway creates a gateway. history and metrics may be nil.
func NewGateway(sessions *session.Registry, runner Runner, history repository.Store, metrics *metric.Metrics) *Gateway {
	return &Gateway{
		sessions: sessions,
		runner:   runner,
		history:  history,
		metrics:  metrics,
	}
}

// Submit registers the query under a new session.
func (g *Gateway) Submit(req domain.SubmitRequest) domain.SubmitResponse {
	id := g.sessions.Create(req.Query)
	g.metrics.SetActiveSessions(g.sessions.Len())
	return domain.SubmitResponse{
		SessionID: id,
		Status:    domain.SubmitStatusStarted,
		Query:     req.Query,
	}
}

// Status reports whether sessionID is still pending or streaming.
func (g *Gateway) Status(sessionID string) domain.SessionStatus {
	return g.sessions.Status(sessionID)
}

// ActiveSessions returns the number of live sessions.
func (g *Gateway) ActiveSessions() int {
	return g.sessions.Len()
}

// History returns the most recent lookup records.
func (g *Gateway) History(ctx context.Context, limit int) ([]domain.Lookup, error) {
	if g.history == nil {
		return []domain.Lookup{}, nil
	}
	lookups, err := g.history.ListLookups(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list lookups: %w", err)
	}
	return lookups, nil
}

// Stream runs the lookup bound to sessionID and writes each event payload
// to sink. An unknown session, or one already claimed by another stream,
// gets a single error payload and session.ErrNotFound is returned. The session is removed exactly once on
// every other exit path.
func (g *Gateway) Stream(ctx context.Context, sessionID string, sink Sink) error {
	query, ok := g.sessions.Claim(sessionID)
	if !ok {
		if err := sink(notFoundPayload); err != nil {
			return fmt.Errorf("failed to write not-found frame: %w", err)
		}
		return session.ErrNotFound
	}

	started := time.Now()
	outcome := outcomeCompleted
	defer func() {
		if !g.sessions.Remove(sessionID) {
			log.Printf("WARN: session %s was already removed", sessionID)
		}
		g.metrics.SetActiveSessions(g.sessions.Len())
		g.metrics.RecordStream(outcome, time.Since(started))
	}()

	g.recordStart(ctx, sessionID, query, started)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var results, failures int
	var writeErr error
	for ev := range g.runner.Run(runCtx, sessionID, query) {
		if isBranchEvent(ev) {
			results++
			if !ev.Success {
				failures++
			}
		}
		if err := sink(EncodeEvent(ev)); err != nil {
			writeErr = err
			cancel()
			break
		}
	}

	status := domain.LookupStatusCompleted
	switch {
	case writeErr != nil:
		outcome = outcomeWriteFailed
		status = domain.LookupStatusFailed
	case ctx.Err() != nil:
		outcome = outcomeDisconnected
		status = domain.LookupStatusCancelled
	}
	g.recordEnd(ctx, sessionID, status, results, failures)

	if writeErr != nil {
		return fmt.Errorf("failed to write event: %w", writeErr)
	}
	return nil
}

func isBranchEvent(ev domain.Event) bool {
	return !(ev.Source == domain.SourceSystem && ev.Type == domain.EventTypeStatus)
}

func (g *Gateway) recordStart(ctx context.Context, sessionID, query string, started time.Time) {
	if g.history == nil {
		return
	}
	err := g.history.CreateLookup(context.WithoutCancel(ctx), &domain.Lookup{
		SessionID: sessionID,
		Query:     query,
		QueryType: classifier.Classify(query),
		Status:    domain.LookupStatusRunning,
		StartedAt: started,
	})
	if err != nil {
		log.Printf("ERROR: failed to record lookup %s: %v", sessionID, err)
	}
}

func (g *Gateway) recordEnd(ctx context.Context, sessionID string, status domain.LookupStatus, results, failures int) {
	if g.history == nil {
		return
	}
	err := g.history.CompleteLookup(context.WithoutCancel(ctx), sessionID, status, results, failures, time.Now())
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("ERROR: failed to complete lookup %s: %v", sessionID, err)
	}
}
