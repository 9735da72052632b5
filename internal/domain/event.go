package domain

import "time"

// Event is one immutable unit of progress or result information emitted
// during a lookup run.
type Event struct {
	Source    string                 `json:"source"`
	Type      EventType              `json:"type"`
	Query     string                 `json:"query"`
	Success   bool                   `json:"success"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	SessionID string                 `json:"sessionId"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(source string, eventType EventType, query, sessionID string) Event {
	return Event{
		Source:    source,
		Type:      eventType,
		Query:     query,
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
		SessionID: sessionID,
	}
}

// Succeeded returns a copy of the event marked successful with the given message and payload.
func (e Event) Succeeded(message string, data map[string]interface{}) Event {
	e.Success = true
	e.Message = message
	e.Data = data
	return e
}

// Failed returns a copy of the event marked failed with the given message.
// Any payload is dropped.
func (e Event) Failed(message string) Event {
	e.Success = false
	e.Message = message
	e.Data = nil
	return e
}
