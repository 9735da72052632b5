// Package v1 provides the HTTP handlers for the lookup API.
package v1

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/imcoder44/FootprintX/internal/metric"
	"github.com/imcoder44/FootprintX/internal/service"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Handler handles HTTP requests.
type Handler struct {
	gateway  *service.Gateway
	metrics  *metric.Metrics
	upgrader websocket.Upgrader
}

// NewHandler creates a new handler. metrics may be nil.
func NewHandler(gateway *service.Gateway, metrics *metric.Metrics) *Handler {
	return &Handler{
		gateway: gateway,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// RegisterRoutes registers routes with the echo server. submit middleware
// only wraps the submission route.
func (h *Handler) RegisterRoutes(e *echo.Echo, submit ...echo.MiddlewareFunc) {
	e.POST("/api/lookup", h.SubmitLookup, submit...)
	e.GET("/api/stream/:session_id", h.StreamLookup)
	e.GET("/api/ws/:session_id", h.StreamLookupWebSocket)
	e.GET("/api/sessions/:session_id/status", h.GetSessionStatus)
	e.GET("/api/lookups", h.ListLookups)

	e.GET("/health", h.Health)
	if h.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))
	}
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"version":         Version,
		"active_sessions": h.gateway.ActiveSessions(),
	})
}
