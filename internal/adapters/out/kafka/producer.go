// Package kafka publishes delivery integration events to the message broker.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

var (
	ErrBrokersAreRequired = errors.New("kafka brokers are required")
	ErrTopicIsRequired    = errors.New("kafka topic is required")
)

// OrderStatusChangedIntegrationEvent is the wire contract published when an
// order reaches a terminal status. Downstream systems key off OrderID, so
// messages are partitioned by it.
type OrderStatusChangedIntegrationEvent struct {
	EventID     string    `json:"eventId"`
	OrderID     string    `json:"orderId"`
	OrderStatus string    `json:"orderStatus"`
	CourierID   string    `json:"courierId"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Producer implements ports.MessageBusProducer on top of a kafka writer.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a producer for the order status topic.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, ErrBrokersAreRequired
	}
	if topic == "" {
		return nil, ErrTopicIsRequired
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}

	return &Producer{writer: writer}, nil
}

// PublishOrderCompleted sends an OrderStatusChanged message keyed by order id.
// Publishing the same outbox event twice yields byte-identical messages, so
// consumers can deduplicate by eventId.
func (p *Producer) PublishOrderCompleted(ctx context.Context, event order.CompletedDomainEvent) error {
	integrationEvent := OrderStatusChangedIntegrationEvent{
		EventID:     event.ID.String(),
		OrderID:     event.OrderID.String(),
		OrderStatus: order.Completed.String(),
		CourierID:   event.CourierID.String(),
		OccurredAt:  event.OccurredAt,
	}

	value, err := json.Marshal(integrationEvent)
	if err != nil {
		return fmt.Errorf("marshal order status changed event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
	}

	if err = p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("publish order %s status change: %w", event.OrderID, err)
	}

	return nil
}

// Close flushes and releases the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
