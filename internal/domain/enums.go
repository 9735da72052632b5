// Package domain defines the core domain models for the lookup service.
package domain

// QueryType is the lookup category derived from a raw query.
type QueryType string

const (
	QueryTypePhone   QueryType = "phone"
	QueryTypeEmail   QueryType = "email"
	QueryTypeIP      QueryType = "ip"
	QueryTypeName    QueryType = "name"
	QueryTypeUnknown QueryType = "unknown"
)

// EventType is the kind carried in an event's "type" field. Besides the two
// system kinds below, branch results use their QueryType as kind.
type EventType string

const (
	EventTypeStatus EventType = "status"
	EventTypeError  EventType = "error"
)

// EventType returns the event kind used for results of this query type.
func (q QueryType) EventType() EventType {
	return EventType(q)
}

// LookupStatus represents the status of a recorded lookup.
type LookupStatus string

const (
	LookupStatusRunning   LookupStatus = "running"
	LookupStatusCompleted LookupStatus = "completed"
	LookupStatusFailed    LookupStatus = "failed"
	LookupStatusCancelled LookupStatus = "cancelled"
)

// SourceSystem is the source name used for events produced by the service itself.
const SourceSystem = "System"
