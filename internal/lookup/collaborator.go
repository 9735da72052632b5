// Package lookup provides the collaborators that perform one category of
// lookup each (phone, email, IP geolocation, social search).
package lookup

import (
	"context"

	"github.com/imcoder44/FootprintX/internal/domain"
)

// Kind identifies a collaborator slot in the registry.
type Kind string

const (
	KindPhone  Kind = "phone"
	KindEmail  Kind = "email"
	KindIP     Kind = "ip"
	KindSocial Kind = "social"
)

// Collaborator performs a single lookup and produces exactly one event.
//
// Implementations report provider failures as a failed event. A non-nil
// error carries the underlying cause for logging; callers must not forward
// it to clients.
type Collaborator interface {
	// Name is the source name used when the caller has to synthesize an event.
	Name() string
	Lookup(ctx context.Context, input, sessionID string) (domain.Event, error)
}
