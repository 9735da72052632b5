package domain

import "time"

// Lookup is the persisted summary of one orchestration run. Individual
// events are never stored.
type Lookup struct {
	SessionID string       `json:"session_id"`
	Query     string       `json:"query"`
	QueryType QueryType    `json:"query_type"`
	Status    LookupStatus `json:"status"`
	Results   int          `json:"results"`
	Failures  int          `json:"failures"`
	StartedAt time.Time    `json:"started_at"`
	EndedAt   *time.Time   `json:"ended_at,omitempty"`
}
