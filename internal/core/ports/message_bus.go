package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// MessageBusProducer publishes integration events to the message broker.
type MessageBusProducer interface {
	// PublishOrderCompleted notifies downstream systems that an order has
	// been delivered.
	PublishOrderCompleted(ctx context.Context, event order.CompletedDomainEvent) error
}
