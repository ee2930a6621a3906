package events

import "time"

// Event defines the contract for all client events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_REVOKED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Topic names double as event type codes. Every event is published on the
// topic matching its type.
const (
	TopicSessionEstablished = "SESSION_ESTABLISHED"
	TopicSessionRevoked     = "SESSION_REVOKED"
	TopicUploadCompleted    = "UPLOAD_COMPLETED"
)

// BaseEvent is the concrete implementation used for all client events.
type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewSessionEstablished is published when a credential becomes active, either
// from a fresh sign-in or a bootstrap restore.
func NewSessionEstablished(identity string) BaseEvent {
	return BaseEvent{
		Type:       TopicSessionEstablished,
		Data:       map[string]interface{}{"identity": identity},
		OccurredAt: time.Now(),
	}
}

// NewSessionRevoked is published when the credential is cleared, whether by an
// explicit sign-out or an observed authorization failure.
func NewSessionRevoked(reason string) BaseEvent {
	return BaseEvent{
		Type:       TopicSessionRevoked,
		Data:       map[string]interface{}{"reason": reason},
		OccurredAt: time.Now(),
	}
}

// NewUploadCompleted is published after the portal accepts an uploaded file.
func NewUploadCompleted(filename string) BaseEvent {
	return BaseEvent{
		Type:       TopicUploadCompleted,
		Data:       map[string]interface{}{"filename": filename},
		OccurredAt: time.Now(),
	}
}
