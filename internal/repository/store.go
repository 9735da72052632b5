// Package repository persists lookup history.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/imcoder44/FootprintX/internal/domain"
)

// ErrNotFound is returned when a lookup does not exist.
var ErrNotFound = errors.New("lookup not found")

// Store defines the interface for lookup history persistence.
type Store interface {
	CreateLookup(ctx context.Context, lookup *domain.Lookup) error
	CompleteLookup(ctx context.Context, sessionID string, status domain.LookupStatus, results, failures int, endedAt time.Time) error
	GetLookup(ctx context.Context, sessionID string) (*domain.Lookup, error)
	ListLookups(ctx context.Context, limit int) ([]domain.Lookup, error)
	PruneLookups(ctx context.Context, before time.Time) (int64, error)

	// Lifecycle
	Close() error
}
