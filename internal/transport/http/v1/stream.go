package v1

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/imcoder44/FootprintX/internal/domain"
	"github.com/imcoder44/FootprintX/internal/service"
	"github.com/imcoder44/FootprintX/internal/session"
)

const wsWriteTimeout = 10 * time.Second

// StreamLookup streams the events of a session as server-sent events.
// GET /api/stream/:session_id
func (h *Handler) StreamLookup(c echo.Context) error {
	sessionID := c.Param("session_id")

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return c.JSON(http.StatusInternalServerError, domain.ErrorFrame{Error: "streaming not supported"})
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	err := h.gateway.Stream(c.Request().Context(), sessionID, func(payload []byte) error {
		if _, err := w.Write(service.SSEFrame(payload)); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		log.Printf("WARN: stream for session %s ended early: %v", sessionID, err)
	}
	return nil
}

// StreamLookupWebSocket streams the events of a session as WebSocket text
// messages, one event per message.
// GET /api/ws/:session_id
func (h *Handler) StreamLookupWebSocket(c echo.Context) error {
	sessionID := c.Param("session_id")

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("ERROR: failed to upgrade WebSocket for session %s: %v", sessionID, err)
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	// The client never sends data; a read error means it went away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	err = h.gateway.Stream(ctx, sessionID, func(payload []byte) error {
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return conn.WriteMessage(websocket.TextMessage, payload)
	})
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		log.Printf("WARN: websocket stream for session %s ended early: %v", sessionID, err)
		return nil
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return nil
}
