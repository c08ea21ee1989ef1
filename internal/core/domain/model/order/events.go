package order

import (
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// CompletedEventType is the outbox discriminator for CompletedDomainEvent.
const CompletedEventType = "OrderCompleted"

// CompletedDomainEvent is raised when an order transitions to Completed.
// It is the only fact the delivery core promises to external consumers:
// "this order was delivered by this courier".
//
// The struct is JSON-serializable as-is; the field tags define the wire shape
// persisted in the outbox and published to the notification bus.
type CompletedDomainEvent struct {
	ID         kernel.UUID `json:"eventId"`
	OccurredAt time.Time   `json:"occurredAt"`
	OrderID    kernel.UUID `json:"orderId"`
	CourierID  kernel.UUID `json:"courierId"`
}

// NewCompletedDomainEvent creates the completion event for the given
// order/courier pair with a fresh event id and the current UTC time.
func NewCompletedDomainEvent(orderID, courierID kernel.UUID) CompletedDomainEvent {
	return CompletedDomainEvent{
		ID:         kernel.NewUUID(),
		OccurredAt: time.Now().UTC(),
		OrderID:    orderID,
		CourierID:  courierID,
	}
}

// RestoreCompletedDomainEvent deserializes an event previously recorded in
// the outbox under CompletedEventType.
func RestoreCompletedDomainEvent(content []byte) (CompletedDomainEvent, error) {
	var event CompletedDomainEvent
	if err := json.Unmarshal(content, &event); err != nil {
		return CompletedDomainEvent{}, err
	}
	return event, nil
}

// EventID returns the event's own identity, used as the outbox row id so
// duplicate extraction stays idempotent.
func (e CompletedDomainEvent) EventID() kernel.UUID {
	return e.ID
}

// EventType returns the discriminator recorded in the outbox Type column.
func (e CompletedDomainEvent) EventType() string {
	return CompletedEventType
}

// OccurredAtUTC returns when the completion happened.
func (e CompletedDomainEvent) OccurredAtUTC() time.Time {
	return e.OccurredAt
}
