package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderAdmitted EventType = "order_admitted"
	EventOrderPrinted  EventType = "order_printed"
	EventOrderDeleted  EventType = "order_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	OrderID   string      `json:"order_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// OrderAdmittedPayload payload.
type OrderAdmittedPayload struct {
	WorkerKey string `json:"worker_key"`
	Company   string `json:"company"`
	Quantity  int    `json:"quantity"`
	DateStr   string `json:"date_str"`
}

// OrderPrintedPayload payload.
type OrderPrintedPayload struct {
	Printed bool `json:"printed"`
}
