package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate on a successful state change.
// Events are buffered inside the aggregate, drained into the outbox by the
// unit of work at commit time, and relayed to external consumers
// asynchronously.
//
// EventType is the discriminator persisted alongside the serialized payload;
// it is what allows the outbox dispatcher to reconstruct the typed event.
type DomainEvent interface {
	EventID() UUID
	EventType() string
	OccurredAtUTC() time.Time
}

// Aggregate is implemented by aggregate roots that raise domain events.
// The unit of work uses it to extract pending events during commit and to
// clear the buffer once they are safely recorded.
type Aggregate interface {
	ID() UUID
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
