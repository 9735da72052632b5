package lookup

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/imcoder44/FootprintX/internal/domain"
)

// PhoneClient validates phone numbers against the Numverify API.
type PhoneClient struct {
	httpProvider
}

// NewPhoneClient creates a new Numverify client.
func NewPhoneClient(baseURL, apiKey string, timeout time.Duration) *PhoneClient {
	return &PhoneClient{httpProvider: newHTTPProvider(baseURL, apiKey, timeout)}
}

var _ Collaborator = (*PhoneClient)(nil)

// Name returns the source name.
func (c *PhoneClient) Name() string { return "Numverify" }

// Lookup validates a phone number.
func (c *PhoneClient) Lookup(ctx context.Context, number, sessionID string) (domain.Event, error) {
	event := domain.NewEvent(c.Name(), domain.QueryTypePhone.EventType(), number, sessionID)

	q := url.Values{}
	q.Set("access_key", c.apiKey)
	q.Set("number", number)

	data, err := c.getJSON(ctx, c.baseURL+"/api/validate?"+q.Encode(), nil)
	if err != nil {
		return event.Failed("Failed to lookup phone number"), fmt.Errorf("numverify lookup: %w", err)
	}
	return event.Succeeded("Phone lookup completed successfully", data), nil
}
