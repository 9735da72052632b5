package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/imcoder44/FootprintX/internal/domain"
)

// EmailClient enriches email addresses through the Clearbit combined API.
type EmailClient struct {
	httpProvider
}

// NewEmailClient creates a new Clearbit client.
func NewEmailClient(baseURL, apiKey string, timeout time.Duration) *EmailClient {
	return &EmailClient{httpProvider: newHTTPProvider(baseURL, apiKey, timeout)}
}

var _ Collaborator = (*EmailClient)(nil)

// Name returns the source name.
func (c *EmailClient) Name() string { return "Clearbit" }

// Lookup enriches an email address.
func (c *EmailClient) Lookup(ctx context.Context, email, sessionID string) (domain.Event, error) {
	event := domain.NewEvent(c.Name(), domain.QueryTypeEmail.EventType(), email, sessionID)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.apiKey)

	data, err := c.getJSON(ctx, c.baseURL+"/v2/combined/find?email="+url.QueryEscape(email), header)
	if err != nil {
		return event.Failed("Failed to lookup email"), fmt.Errorf("clearbit lookup: %w", err)
	}
	return event.Succeeded("Email lookup completed successfully", data), nil
}
