package http

import (
	"bytes"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"

	"github.com/imcoder44/FootprintX/internal/config"
	"github.com/imcoder44/FootprintX/internal/lookup"
	"github.com/imcoder44/FootprintX/internal/service"
	"github.com/imcoder44/FootprintX/internal/session"
)

func newTestGateway(cfg *config.Config) *service.Gateway {
	orchestrator := service.NewOrchestrator(lookup.NewRegistryFromConfig(cfg), nil, nil, cfg.Pacing(), cfg.NameEmailDomain)
	return service.NewGateway(session.NewRegistry(), orchestrator, nil, nil)
}

func submit(e nethttp.Handler, user, pass string) int {
	req := httptest.NewRequest(nethttp.MethodPost, "/api/lookup", bytes.NewBufferString(`{"query":"8.8.8.8"}`))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestSubmitWithoutAuthConfigured(t *testing.T) {
	cfg := &config.Config{LookupMode: config.ModeFixture}
	e := NewServer(cfg, newTestGateway(cfg), nil)

	assert.Equal(t, nethttp.StatusOK, submit(e, "", ""))
}

func TestSubmitRequiresBasicAuth(t *testing.T) {
	cfg := &config.Config{LookupMode: config.ModeFixture, AuthUsername: "admin", AuthPassword: "admin123"}
	e := NewServer(cfg, newTestGateway(cfg), nil)

	assert.Equal(t, nethttp.StatusUnauthorized, submit(e, "", ""))
	assert.Equal(t, nethttp.StatusUnauthorized, submit(e, "admin", "wrong"))
	assert.Equal(t, nethttp.StatusOK, submit(e, "admin", "admin123"))

	// Status and stream routes stay open.
	req := httptest.NewRequest(nethttp.MethodGet, "/api/sessions/x/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
}

func TestMetricsRouteOnlyWithMetrics(t *testing.T) {
	cfg := &config.Config{LookupMode: config.ModeFixture}
	e := NewServer(cfg, newTestGateway(cfg), nil)

	req := httptest.NewRequest(nethttp.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, log.DEBUG, logLevel("DEBUG"))
	assert.Equal(t, log.WARN, logLevel("warn"))
	assert.Equal(t, log.ERROR, logLevel("error"))
	assert.Equal(t, log.OFF, logLevel("off"))
	assert.Equal(t, log.INFO, logLevel(""))
}
