package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/imcoder44/FootprintX/internal/domain"
)

type client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

func newAPIClient(baseURL, username, password string) *client {
	return &client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *client) submit(ctx context.Context, query string) (domain.SubmitResponse, error) {
	var resp domain.SubmitResponse

	body, err := json.Marshal(domain.SubmitRequest{Query: query, Type: "auto"})
	if err != nil {
		return resp, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/lookup", bytes.NewReader(body))
	if err != nil {
		return resp, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	err = c.do(req, &resp)
	return resp, err
}

func (c *client) status(ctx context.Context, sessionID string) (domain.SessionStatus, error) {
	var status domain.SessionStatus
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/sessions/"+url.PathEscape(sessionID)+"/status", nil)
	if err != nil {
		return status, err
	}
	err = c.do(req, &status)
	return status, err
}

func (c *client) history(ctx context.Context, limit int) ([]domain.Lookup, error) {
	var body struct {
		Lookups []domain.Lookup `json:"lookups"`
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/lookups?limit="+strconv.Itoa(limit), nil)
	if err != nil {
		return nil, err
	}
	err = c.do(req, &body)
	return body.Lookups, err
}

func (c *client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr domain.ErrorFrame
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errSessionNotFound mirrors the only error frame that ends a stream.
var errSessionNotFound = errors.New("Session not found")

// streamMessage is either an event or an error frame.
type streamMessage struct {
	domain.Event
	Error string `json:"error"`
}

// stream reads the session's events over the WebSocket endpoint until the
// server closes the stream. Error frames other than an unknown session are
// handed to fn as error events and reading continues.
func (c *client) stream(ctx context.Context, sessionID string, fn func(domain.Event) error) error {
	wsURL, err := c.wsURL(sessionID)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read: %w", err)
		}

		var msg streamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("decode event: %w", err)
		}
		ev := msg.Event
		if msg.Error != "" {
			if msg.Error == errSessionNotFound.Error() {
				return errSessionNotFound
			}
			ev = domain.Event{Source: "error", Type: domain.EventTypeError, Message: msg.Error}
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
}

func (c *client) wsURL(sessionID string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http", "":
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/ws/" + url.PathEscape(sessionID)
	return u.String(), nil
}
