package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/imcoder44/FootprintX/internal/classifier"
	"github.com/imcoder44/FootprintX/internal/config"
	"github.com/imcoder44/FootprintX/internal/domain"
	"github.com/imcoder44/FootprintX/internal/lookup"
	"github.com/imcoder44/FootprintX/internal/metric"
	"github.com/imcoder44/FootprintX/policy"
)

const (
	// SourcePolicy is the source of events produced by a policy block.
	SourcePolicy = "Policy"

	MessageUnknownQuery = "Unknown query type. Try: phone number, email, IP address, or person name"
	MessageCompleted    = "OSINT lookup completed. Type another query or 'help' for commands."
	messageBlocked      = "Lookup blocked by policy"
)

// PolicyEvaluator decides whether a classified query may be dispatched.
type PolicyEvaluator interface {
	Evaluate(ctx context.Context, input policy.Input) (policy.Decision, string, error)
}

// Orchestrator turns one query into a paced, ordered sequence of events.
type Orchestrator struct {
	collaborators   *lookup.Registry
	policy          PolicyEvaluator
	metrics         *metric.Metrics
	pacing          config.Pacing
	nameEmailDomain string
}

// NewOrchestrator creates an orchestrator. policyEngine and metrics may be nil.
func NewOrchestrator(collaborators *lookup.Registry, policyEngine PolicyEvaluator, metrics *metric.Metrics, pacing config.Pacing, nameEmailDomain string) *Orchestrator {
	return &Orchestrator{
		collaborators:   collaborators,
		policy:          policyEngine,
		metrics:         metrics,
		pacing:          pacing,
		nameEmailDomain: nameEmailDomain,
	}
}

// Run starts a lookup for query and returns the channel its events are
// delivered on. The channel is closed after the end event or as soon as ctx
// is cancelled. An empty sessionID allocates a fresh one.
func (o *Orchestrator) Run(ctx context.Context, sessionID, query string) <-chan domain.Event {
	if sessionID == "" {
		sessionID = "sess_" + uuid.New().String()
	}
	out := make(chan domain.Event)
	go o.run(ctx, sessionID, query, out)
	return out
}

func (o *Orchestrator) run(ctx context.Context, sessionID, query string, out chan<- domain.Event) {
	defer close(out)

	queryType := classifier.Classify(query)
	o.metrics.RecordLookup(string(queryType))

	emit := func(ev domain.Event) bool {
		if ctx.Err() != nil {
			return false
		}
		select {
		case out <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !sleep(ctx, o.pacing.Start) {
		return
	}
	start := domain.NewEvent(domain.SourceSystem, domain.EventTypeStatus, query, sessionID).
		Succeeded(fmt.Sprintf("Starting OSINT lookup for: %s (detected as: %s)", query, queryType), nil)
	if !emit(start) {
		return
	}

	if !o.branch(ctx, sessionID, query, queryType, emit) {
		return
	}

	if !sleep(ctx, o.pacing.End) {
		return
	}
	end := domain.NewEvent(domain.SourceSystem, domain.EventTypeStatus, query, sessionID).
		Succeeded(MessageCompleted, nil)
	emit(end)
}

// branch emits the events between start and end. It returns false when the
// run was cancelled.
func (o *Orchestrator) branch(ctx context.Context, sessionID, query string, queryType domain.QueryType, emit func(domain.Event) bool) bool {
	input := strings.TrimSpace(query)

	if queryType == domain.QueryTypeUnknown {
		return emit(domain.NewEvent(domain.SourceSystem, domain.EventTypeError, query, sessionID).
			Failed(MessageUnknownQuery))
	}

	if blocked, reason := o.blocked(ctx, input, queryType); blocked {
		if reason == "" {
			reason = messageBlocked
		}
		o.metrics.RecordPolicyBlock(string(queryType))
		return emit(domain.NewEvent(SourcePolicy, queryType.EventType(), input, sessionID).Failed(reason))
	}

	switch queryType {
	case domain.QueryTypePhone:
		return o.single(ctx, lookup.KindPhone, queryType, input, sessionID, o.pacing.Phone, emit)
	case domain.QueryTypeEmail:
		return o.single(ctx, lookup.KindEmail, queryType, input, sessionID, o.pacing.Email, emit)
	case domain.QueryTypeIP:
		return o.single(ctx, lookup.KindIP, queryType, input, sessionID, o.pacing.IP, emit)
	case domain.QueryTypeName:
		return o.name(ctx, input, sessionID, emit)
	}
	return true
}

func (o *Orchestrator) blocked(ctx context.Context, input string, queryType domain.QueryType) (bool, string) {
	if o.policy == nil {
		return false, ""
	}
	decision, reason, err := o.policy.Evaluate(ctx, policy.Input{Query: input, QueryType: string(queryType)})
	if err != nil {
		log.Printf("WARN: policy evaluation failed, allowing %s lookup: %v", queryType, err)
		return false, ""
	}
	return decision == policy.DecisionBlock, reason
}

func (o *Orchestrator) single(ctx context.Context, kind lookup.Kind, queryType domain.QueryType, input, sessionID string, pace time.Duration, emit func(domain.Event) bool) bool {
	ev := o.paced(ctx, pace, func() domain.Event {
		return o.invoke(ctx, kind, queryType.EventType(), input, sessionID)
	})
	if ctx.Err() != nil {
		return false
	}
	return emit(ev)
}

// name fans out an email lookup and a social search and emits both events
// in the order they complete.
func (o *Orchestrator) name(ctx context.Context, input, sessionID string, emit func(domain.Event) bool) bool {
	results := make(chan domain.Event, 2)

	go func() {
		email := input + o.nameEmailDomain
		results <- o.paced(ctx, o.pacing.NameEmail, func() domain.Event {
			return o.invoke(ctx, lookup.KindEmail, domain.QueryTypeEmail.EventType(), email, sessionID)
		})
	}()
	go func() {
		ev := o.paced(ctx, o.pacing.NameSocial, func() domain.Event {
			return o.invoke(ctx, lookup.KindSocial, domain.QueryTypeName.EventType(), input, sessionID)
		})
		ev.Type = domain.QueryTypeName.EventType()
		results <- ev
	}()

	for i := 0; i < 2; i++ {
		select {
		case ev := <-results:
			if !emit(ev) {
				return false
			}
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// paced runs fn and holds its result until at least d has elapsed since
// dispatch.
func (o *Orchestrator) paced(ctx context.Context, d time.Duration, fn func() domain.Event) domain.Event {
	dispatched := time.Now()
	ev := fn()
	sleep(ctx, d-time.Since(dispatched))
	return ev
}

// invoke calls the collaborator registered for kind and always yields
// exactly one event.
func (o *Orchestrator) invoke(ctx context.Context, kind lookup.Kind, eventType domain.EventType, input, sessionID string) (ev domain.Event) {
	c, ok := o.collaborators.Get(kind)
	if !ok {
		log.Printf("ERROR: no collaborator registered for %s", kind)
		ev = domain.NewEvent(string(kind), eventType, input, sessionID).Failed(failureMessage(kind))
		o.metrics.RecordProviderEvent(ev.Source, false)
		return ev
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: %s collaborator panicked (session %s): %v", c.Name(), sessionID, r)
			ev = domain.NewEvent(c.Name(), eventType, input, sessionID).Failed(failureMessage(kind))
		}
		o.metrics.RecordProviderEvent(ev.Source, ev.Success)
	}()

	var err error
	ev, err = c.Lookup(ctx, input, sessionID)
	if err != nil {
		log.Printf("WARN: %s lookup failed (session %s): %v", c.Name(), sessionID, err)
		if ev.Success || ev.Source == "" {
			ev = domain.NewEvent(c.Name(), eventType, input, sessionID).Failed(failureMessage(kind))
		}
	}
	ev.SessionID = sessionID
	return ev
}

func failureMessage(kind lookup.Kind) string {
	switch kind {
	case lookup.KindPhone:
		return "Failed to lookup phone number"
	case lookup.KindEmail:
		return "Failed to lookup email"
	case lookup.KindIP:
		return "Failed to lookup IP address"
	case lookup.KindSocial:
		return "Failed to search social media"
	}
	return "Lookup failed"
}

// sleep waits for d or until ctx is done. It reports whether ctx is still live.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
