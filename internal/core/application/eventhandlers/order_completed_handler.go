// Package eventhandlers routes domain events drained from the outbox to
// their side effects, e.g. publishing integration events to the broker.
package eventhandlers

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// OrderCompletedHandler reacts to a completed delivery by publishing the
// OrderStatusChanged integration event.
type OrderCompletedHandler struct {
	producer ports.MessageBusProducer
}

// NewOrderCompletedHandler creates the handler.
func NewOrderCompletedHandler(producer ports.MessageBusProducer) OrderCompletedHandler {
	return OrderCompletedHandler{producer: producer}
}

// Handle forwards the event to the message bus.
func (h OrderCompletedHandler) Handle(ctx context.Context, event order.CompletedDomainEvent) error {
	return h.producer.PublishOrderCompleted(ctx, event)
}
