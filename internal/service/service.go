// Package service implements lookup orchestration and the streaming gateway
// that binds runs to sessions.
package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/imcoder44/FootprintX/internal/domain"
)

var (
	notFoundPayload    = mustPayload("Session not found")
	formatErrorPayload = mustPayload("Failed to format result")
)

func mustPayload(msg string) []byte {
	b, err := json.Marshal(domain.ErrorFrame{Error: msg})
	if err != nil {
		panic(err)
	}
	return b
}

// EncodeEvent marshals ev to JSON. On failure the fixed format error
// payload is returned instead.
func EncodeEvent(ev domain.Event) []byte {
	b, err := json.Marshal(ev)
	if err != nil {
		log.Printf("ERROR: failed to encode event from %s: %v", ev.Source, err)
		return formatErrorPayload
	}
	return b
}

// SSEFrame wraps a JSON payload in a server-sent events data frame.
func SSEFrame(payload []byte) []byte {
	frame := make([]byte, 0, len(payload)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, payload...)
	frame = append(frame, '\n', '\n')
	return frame
}

// Sink receives the JSON payload of each frame written to a stream.
type Sink func(payload []byte) error

// Runner produces the events of one lookup run.
type Runner interface {
	Run(ctx context.Context, sessionID, query string) <-chan domain.Event
}
