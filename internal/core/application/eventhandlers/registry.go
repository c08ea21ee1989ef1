package eventhandlers

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// Registry decodes serialized domain events by their type discriminator and
// routes each to its handler. Outbox rows carry only the type name and the
// JSON payload, so this is the single place where both are interpreted.
type Registry struct {
	orderCompleted OrderCompletedHandler
}

// NewRegistry creates a registry wired to the given message bus producer.
func NewRegistry(producer ports.MessageBusProducer) Registry {
	return Registry{
		orderCompleted: NewOrderCompletedHandler(producer),
	}
}

// Dispatch decodes the event payload and invokes the matching handler.
// An unknown event type is an error: it means a producer and this registry
// disagree about the event catalog.
func (r Registry) Dispatch(ctx context.Context, eventType string, content []byte) error {
	switch eventType {
	case order.CompletedEventType:
		event, err := order.RestoreCompletedDomainEvent(content)
		if err != nil {
			return fmt.Errorf("decode %s: %w", eventType, err)
		}
		return r.orderCompleted.Handle(ctx, event)
	default:
		return fmt.Errorf("unknown domain event type %q", eventType)
	}
}
