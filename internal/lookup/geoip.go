package lookup

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/imcoder44/FootprintX/internal/domain"
)

// GeoIPClient geolocates IP addresses through the IPStack API.
type GeoIPClient struct {
	httpProvider
}

// NewGeoIPClient creates a new IPStack client.
func NewGeoIPClient(baseURL, apiKey string, timeout time.Duration) *GeoIPClient {
	return &GeoIPClient{httpProvider: newHTTPProvider(baseURL, apiKey, timeout)}
}

var _ Collaborator = (*GeoIPClient)(nil)

// Name returns the source name.
func (c *GeoIPClient) Name() string { return "IPStack" }

// Lookup geolocates an IP address.
func (c *GeoIPClient) Lookup(ctx context.Context, ip, sessionID string) (domain.Event, error) {
	event := domain.NewEvent(c.Name(), domain.QueryTypeIP.EventType(), ip, sessionID)

	q := url.Values{}
	q.Set("access_key", c.apiKey)

	data, err := c.getJSON(ctx, c.baseURL+"/"+url.PathEscape(ip)+"?"+q.Encode(), nil)
	if err != nil {
		return event.Failed("Failed to lookup IP address"), fmt.Errorf("ipstack lookup: %w", err)
	}
	// IPStack reports API errors with a 200 and an "error" object.
	if apiErr, ok := data["error"]; ok {
		return event.Failed("Failed to lookup IP address"), fmt.Errorf("ipstack lookup: %v", apiErr)
	}
	return event.Succeeded("IP geolocation lookup completed successfully", data), nil
}
