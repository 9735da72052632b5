package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imcoder44/FootprintX/internal/config"
	"github.com/imcoder44/FootprintX/internal/domain"
)

func jsonServer(t *testing.T, check func(r *http.Request), status int, body interface{}) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestPhoneClientSuccess(t *testing.T) {
	server := jsonServer(t, func(r *http.Request) {
		assert.Equal(t, "/api/validate", r.URL.Path)
		assert.Equal(t, "key123", r.URL.Query().Get("access_key"))
		assert.Equal(t, "+14155552671", r.URL.Query().Get("number"))
	}, http.StatusOK, map[string]interface{}{"valid": true, "carrier": "AT&T"})

	c := NewPhoneClient(server.URL, "key123", time.Second)
	event, err := c.Lookup(context.Background(), "+14155552671", "sess_1")
	require.NoError(t, err)

	assert.Equal(t, "Numverify", event.Source)
	assert.Equal(t, domain.EventType("phone"), event.Type)
	assert.True(t, event.Success)
	assert.Equal(t, "sess_1", event.SessionID)
	assert.Equal(t, "AT&T", event.Data["carrier"])
}

func TestPhoneClientFailureBecomesFailedEvent(t *testing.T) {
	server := jsonServer(t, nil, http.StatusInternalServerError, map[string]string{"error": "boom"})

	c := NewPhoneClient(server.URL, "key123", time.Second)
	event, err := c.Lookup(context.Background(), "12345678901", "sess_1")
	require.Error(t, err)

	assert.False(t, event.Success)
	assert.Equal(t, "Failed to lookup phone number", event.Message)
	assert.Nil(t, event.Data)
	assert.Equal(t, "12345678901", event.Query)
}

func TestEmailClientSendsBearerToken(t *testing.T) {
	server := jsonServer(t, func(r *http.Request) {
		assert.Equal(t, "/v2/combined/find", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		assert.Equal(t, "test@example.com", r.URL.Query().Get("email"))
	}, http.StatusOK, map[string]interface{}{"person": map[string]interface{}{"name": "Test"}})

	c := NewEmailClient(server.URL+"/", "sk_test", time.Second)
	event, err := c.Lookup(context.Background(), "test@example.com", "sess_2")
	require.NoError(t, err)

	assert.Equal(t, "Clearbit", event.Source)
	assert.Equal(t, domain.EventType("email"), event.Type)
	assert.True(t, event.Success)
	assert.Contains(t, event.Data, "person")
}

func TestGeoIPClientAPIErrorBody(t *testing.T) {
	server := jsonServer(t, func(r *http.Request) {
		assert.Equal(t, "/8.8.8.8", r.URL.Path)
	}, http.StatusOK, map[string]interface{}{
		"success": false,
		"error":   map[string]interface{}{"code": 101, "type": "invalid_access_key"},
	})

	c := NewGeoIPClient(server.URL, "bad", time.Second)
	event, err := c.Lookup(context.Background(), "8.8.8.8", "sess_3")
	require.Error(t, err)
	assert.False(t, event.Success)
	assert.Equal(t, "Failed to lookup IP address", event.Message)
}

func TestGeoIPClientRespectsContext(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(block)
		server.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewGeoIPClient(server.URL, "key", 5*time.Second)
	event, err := c.Lookup(ctx, "1.1.1.1", "sess_4")
	require.Error(t, err)
	assert.False(t, event.Success)
}

func TestFixtureClients(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		kind     Kind
		input    string
		source   string
		wantType domain.EventType
	}{
		{KindPhone, "12345678901", "Numverify (Demo)", "phone"},
		{KindEmail, "test@example.com", "Clearbit (Demo)", "email"},
		{KindIP, "192.168.1.1", "IPStack (Demo)", "ip"},
		{KindSocial, "Jane Doe", "Social Search (Demo)", "name"},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			f := NewFixtureClient(tc.kind)
			event, err := f.Lookup(ctx, tc.input, "sess_f")
			require.NoError(t, err)
			assert.Equal(t, tc.source, event.Source)
			assert.Equal(t, tc.source, f.Name())
			assert.Equal(t, tc.wantType, event.Type)
			assert.True(t, event.Success)
			assert.Equal(t, true, event.Data["demo_mode"])
			assert.Equal(t, "sess_f", event.SessionID)
		})
	}
}

func TestSocialFixtureMessage(t *testing.T) {
	event, err := NewFixtureClient(KindSocial).Lookup(context.Background(), "Jane Doe", "s")
	require.NoError(t, err)
	assert.Equal(t, "Social media search completed for: Jane Doe", event.Message)
	assert.Equal(t, "https://twitter.com/jane_doe", event.Data["twitter"])
}

func TestFixtureUnknownKind(t *testing.T) {
	event, err := NewFixtureClient(Kind("fax")).Lookup(context.Background(), "x", "s")
	assert.Error(t, err)
	assert.False(t, event.Success)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(KindPhone, NewFixtureClient(KindPhone)))
	assert.Error(t, r.Register(KindPhone, NewFixtureClient(KindPhone)))
	assert.Error(t, r.Register("", NewFixtureClient(KindPhone)))
	assert.Error(t, r.Register(KindEmail, nil))

	c, ok := r.Get(KindPhone)
	require.True(t, ok)
	assert.Equal(t, "Numverify (Demo)", c.Name())

	_, ok = r.Get(KindIP)
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestNewRegistryFromConfigModes(t *testing.T) {
	cfg := &config.Config{
		LookupMode:        config.ModeAuto,
		NumverifyKey:      DemoKey,
		NumverifyURL:      "http://numverify.invalid",
		ClearbitKey:       "sk_live",
		ClearbitURL:       "http://clearbit.invalid",
		IPStackKey:        "",
		IPStackURL:        "http://ipstack.invalid",
		ProviderTimeoutMs: 100,
	}

	r := NewRegistryFromConfig(cfg)
	assert.Equal(t, 4, r.Len())

	phone, _ := r.Get(KindPhone)
	assert.IsType(t, &FixtureClient{}, phone)
	email, _ := r.Get(KindEmail)
	assert.IsType(t, &EmailClient{}, email)
	ip, _ := r.Get(KindIP)
	assert.IsType(t, &FixtureClient{}, ip)
	social, _ := r.Get(KindSocial)
	assert.IsType(t, &FixtureClient{}, social)

	cfg.LookupMode = config.ModeFixture
	email, _ = NewRegistryFromConfig(cfg).Get(KindEmail)
	assert.IsType(t, &FixtureClient{}, email)

	cfg.LookupMode = config.ModeLive
	phone, _ = NewRegistryFromConfig(cfg).Get(KindPhone)
	assert.IsType(t, &PhoneClient{}, phone)
}
