package lookup

import (
	"fmt"
	"sync"
)

// Registry stores collaborators keyed by kind.
type Registry struct {
	mu            sync.RWMutex
	collaborators map[Kind]Collaborator
}

// NewRegistry creates an empty collaborator registry.
func NewRegistry() *Registry {
	return &Registry{
		collaborators: make(map[Kind]Collaborator),
	}
}

// Register adds a collaborator for a kind.
func (r *Registry) Register(kind Kind, c Collaborator) error {
	if kind == "" {
		return fmt.Errorf("kind is required")
	}
	if c == nil {
		return fmt.Errorf("collaborator is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.collaborators[kind]; exists {
		return fmt.Errorf("collaborator already registered for %s", kind)
	}
	r.collaborators[kind] = c
	return nil
}

// MustRegister adds a collaborator or panics.
func (r *Registry) MustRegister(kind Kind, c Collaborator) {
	if err := r.Register(kind, c); err != nil {
		panic(err)
	}
}

// Get returns the collaborator registered for kind.
func (r *Registry) Get(kind Kind) (Collaborator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.collaborators[kind]
	return c, ok
}

// Len returns the number of registered collaborators.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.collaborators)
}
