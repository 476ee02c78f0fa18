package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCustomerCreated     EventType = "customer_created"
	EventCustomerUpdated     EventType = "customer_updated"
	EventCustomerDeleted     EventType = "customer_deleted"
	EventBulkCreateCompleted EventType = "bulk_create_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	CustomerID string      `json:"customer_id,omitempty"`
	ActorID    *string     `json:"actor_id,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// CustomerCreatedPayload payload.
type CustomerCreatedPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CustomerUpdatedPayload payload.
type CustomerUpdatedPayload struct {
	Email string `json:"email"`
}

// CustomerDeletedPayload payload.
type CustomerDeletedPayload struct {
	Email string `json:"email"`
}

// BulkCreateCompletedPayload payload.
type BulkCreateCompletedPayload struct {
	Requested int `json:"requested"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}
