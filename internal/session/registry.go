// Package session tracks submitted lookups between submission and streaming.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/imcoder44/FootprintX/internal/domain"
)

// ErrNotFound is returned when a session id is not registered.
var ErrNotFound = errors.New("session not found")

// Session binds an opaque id to the query that runs when its stream opens.
type Session struct {
	ID        string
	Query     string
	CreatedAt time.Time
	// Streaming is set once a stream has claimed the session.
	Streaming bool
}

// Registry is a concurrency-safe map from session id to session.
// Operations on a single id are linearizable.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
	newID    func() string
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]Session),
		newID:    newSessionID,
	}
}

func newSessionID() string {
	return "sess_" + uuid.New().String()
}

// Create registers a new session for query and returns its id.
func (r *Registry) Create(query string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for {
		if _, exists := r.sessions[id]; !exists {
			break
		}
		id = r.newID()
	}
	r.sessions[id] = Session{ID: id, Query: query, CreatedAt: time.Now()}
	return id
}

// Lookup returns the query stored for id.
func (r *Registry) Lookup(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s.Query, ok
}

// Claim marks the session as streaming and returns its query. Only the
// first claim of a live session succeeds; the session stays registered
// until Remove.
func (r *Registry) Claim(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.Streaming {
		return "", false
	}
	s.Streaming = true
	r.sessions[id] = s
	return s.Query, true
}

// Get returns the full session record for id.
func (r *Registry) Get(id string) (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

// Remove deletes the session. Removing an unknown id is a no-op.
// It reports whether a session was actually removed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Exists reports whether id is a live session.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[id]
	return ok
}

// Status returns an introspection snapshot. Query is empty when inactive.
func (r *Registry) Status(id string) domain.SessionStatus {
	query, ok := r.Lookup(id)
	return domain.SessionStatus{
		SessionID: id,
		Active:    ok,
		Query:     query,
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
