package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/imcoder44/FootprintX/internal/domain"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// SubmitLookup registers a query and returns the session to stream.
// POST /api/lookup
func (h *Handler) SubmitLookup(c echo.Context) error {
	var req domain.SubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorFrame{Error: "Invalid request format"})
	}

	return c.JSON(http.StatusOK, h.gateway.Submit(req))
}

// GetSessionStatus reports whether a session is pending or streaming.
// GET /api/sessions/:session_id/status
func (h *Handler) GetSessionStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.gateway.Status(c.Param("session_id")))
}

// ListLookups returns recent lookup history.
// GET /api/lookups
func (h *Handler) ListLookups(c echo.Context) error {
	limit := defaultHistoryLimit
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 {
			limit = val
		}
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	lookups, err := h.gateway.History(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, domain.ErrorFrame{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"lookups": lookups,
	})
}
