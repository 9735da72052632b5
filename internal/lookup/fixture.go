package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/imcoder44/FootprintX/internal/domain"
)

// FixtureClient is a collaborator that answers from canned demo data
// without leaving the process.
type FixtureClient struct {
	kind Kind
}

// NewFixtureClient creates a fixture collaborator for kind.
func NewFixtureClient(kind Kind) *FixtureClient {
	return &FixtureClient{kind: kind}
}

var _ Collaborator = (*FixtureClient)(nil)

// Name returns the source name.
func (f *FixtureClient) Name() string {
	switch f.kind {
	case KindPhone:
		return "Numverify (Demo)"
	case KindEmail:
		return "Clearbit (Demo)"
	case KindIP:
		return "IPStack (Demo)"
	case KindSocial:
		return "Social Search (Demo)"
	}
	return string(f.kind) + " (Demo)"
}

// Lookup returns the fixture result for input.
func (f *FixtureClient) Lookup(ctx context.Context, input, sessionID string) (domain.Event, error) {
	switch f.kind {
	case KindPhone:
		event := domain.NewEvent(f.Name(), domain.QueryTypePhone.EventType(), input, sessionID)
		return event.Succeeded("Demo phone lookup completed", map[string]interface{}{
			"number":       input,
			"valid":        true,
			"country_code": "US",
			"country_name": "United States of America",
			"location":     "California",
			"carrier":      "Demo Carrier",
			"line_type":    "mobile",
			"demo_mode":    true,
		}), nil

	case KindEmail:
		event := domain.NewEvent(f.Name(), domain.QueryTypeEmail.EventType(), input, sessionID)
		return event.Succeeded("Demo email lookup completed", map[string]interface{}{
			"person": map[string]interface{}{
				"email":    input,
				"name":     "John Demo User",
				"location": "San Francisco, CA",
				"title":    "Software Engineer",
				"linkedin": "https://linkedin.com/in/demo-user",
				"twitter":  "https://twitter.com/demo_user",
			},
			"company": map[string]interface{}{
				"name":     "Demo Tech Corp",
				"domain":   "demotechcorp.com",
				"industry": "Technology",
				"size":     "100-500",
			},
			"demo_mode": true,
		}), nil

	case KindIP:
		event := domain.NewEvent(f.Name(), domain.QueryTypeIP.EventType(), input, sessionID)
		return event.Succeeded("Demo IP lookup completed", map[string]interface{}{
			"ip":              input,
			"country_code":    "US",
			"country_name":    "United States",
			"region_code":     "CA",
			"region_name":     "California",
			"city":            "San Francisco",
			"zip":             "94102",
			"latitude":        37.7749,
			"longitude":       -122.4194,
			"connection_type": "Corporate",
			"isp":             "Demo Internet Provider",
			"demo_mode":       true,
		}), nil

	case KindSocial:
		event := domain.NewEvent(f.Name(), domain.QueryTypeName.EventType(), input, sessionID)
		handle := strings.Join(strings.Fields(strings.ToLower(input)), "_")
		return event.Succeeded("Social media search completed for: "+input, map[string]interface{}{
			"name":      input,
			"twitter":   "https://twitter.com/" + handle,
			"linkedin":  "https://linkedin.com/in/" + strings.ReplaceAll(handle, "_", "-"),
			"github":    "https://github.com/" + strings.ReplaceAll(handle, "_", ""),
			"demo_mode": true,
		}), nil
	}

	event := domain.NewEvent(f.Name(), domain.EventType(f.kind), input, sessionID)
	return event.Failed("No fixture data available"), fmt.Errorf("no fixture for kind %s", f.kind)
}
