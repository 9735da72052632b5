package domain

// SubmitRequest represents a lookup submission from the client.
// Type is advisory only; classification always re-derives it from Query.
type SubmitRequest struct {
	Query string `json:"query"`
	Type  string `json:"type,omitempty"`
}

// SubmitResponse represents the response after a lookup is submitted.
type SubmitResponse struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	Query     string `json:"query"`
}

// SessionStatus represents the introspection view of a session.
type SessionStatus struct {
	SessionID string `json:"sessionId"`
	Active    bool   `json:"active"`
	Query     string `json:"query"`
}

// SubmitStatusStarted is the status returned for an accepted submission.
const SubmitStatusStarted = "started"

// ErrorFrame is the body of a terminal error frame on a stream.
type ErrorFrame struct {
	Error string `json:"error"`
}
