// Package kafka consumes upstream integration events that drive the delivery
// workflow. Confirmed baskets arrive here and become delivery orders.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
)

const consumerGroup = "dispatch-delivery"

var (
	ErrConsumerBrokersAreRequired = errors.New("kafka brokers are required")
	ErrConsumerTopicIsRequired    = errors.New("kafka topic is required")
)

// BasketConfirmedIntegrationEvent is the wire contract for confirmed baskets.
type BasketConfirmedIntegrationEvent struct {
	BasketID string  `json:"basketId"`
	Address  Address `json:"address"`
	Volume   int     `json:"volume"`
}

// Address carries the delivery destination of a confirmed basket.
type Address struct {
	Street string `json:"street"`
}

// Deduplicator filters messages the consumer has already acted on.
// The broker delivers at-least-once, so replays of the same basket id are
// expected and must not create duplicate work. A mark is only allowed to
// survive when the basket was handled successfully; Unmark takes it back so
// a redelivery can retry a transient failure.
type Deduplicator interface {
	MarkIfNew(ctx context.Context, basketID string) (bool, error)
	Unmark(ctx context.Context, basketID string) error
}

// CreateOrderHandler is the application seam the consumer drives.
type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

// BasketConfirmedConsumer reads confirmed baskets and creates delivery
// orders from them. Each message is committed regardless of handler outcome:
// malformed or failing messages are logged and skipped, never redelivered in
// a loop.
type BasketConfirmedConsumer struct {
	reader       *kafka.Reader
	handler      CreateOrderHandler
	deduplicator Deduplicator
	logger       *slog.Logger
}

// NewBasketConfirmedConsumer creates a consumer bound to the basket topic.
func NewBasketConfirmedConsumer(
	brokers []string,
	topic string,
	handler CreateOrderHandler,
	deduplicator Deduplicator,
	logger *slog.Logger,
) (*BasketConfirmedConsumer, error) {
	if len(brokers) == 0 {
		return nil, ErrConsumerBrokersAreRequired
	}
	if topic == "" {
		return nil, ErrConsumerTopicIsRequired
	}
	if handler == nil {
		return nil, errors.New("create order handler is required")
	}
	if deduplicator == nil {
		return nil, errors.New("deduplicator is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     consumerGroup,
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
	})

	return &BasketConfirmedConsumer{
		reader:       reader,
		handler:      handler,
		deduplicator: deduplicator,
		logger:       logger.With("component", "basket-confirmed-consumer"),
	}, nil
}

// Run consumes messages until the context is cancelled.
func (c *BasketConfirmedConsumer) Run(ctx context.Context) error {
	for {
		message, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("fetch basket confirmed message: %w", err)
		}

		c.process(ctx, message)

		if err = c.reader.CommitMessages(ctx, message); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("commit offset failed", "error", err)
		}
	}
}

func (c *BasketConfirmedConsumer) process(ctx context.Context, message kafka.Message) {
	var event BasketConfirmedIntegrationEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		c.logger.Error("malformed basket confirmed message", "offset", message.Offset, "error", err)
		return
	}

	firstSeen, err := c.deduplicator.MarkIfNew(ctx, event.BasketID)
	if err != nil {
		c.logger.Error("dedup check failed", "basketId", event.BasketID, "error", err)
		return
	}
	if !firstSeen {
		c.logger.Debug("duplicate basket skipped", "basketId", event.BasketID)
		return
	}

	command, err := c.buildCommand(event)
	if err != nil {
		c.logger.Error("invalid basket confirmed event", "basketId", event.BasketID, "error", err)
		c.unmark(ctx, event.BasketID)
		return
	}

	if err = c.handler.Handle(ctx, command); err != nil {
		// The offset is committed either way, so the mark must go too or a
		// redelivery within the dedup window would skip this basket forever.
		c.logger.Error("create order failed", "basketId", event.BasketID, "error", err)
		c.unmark(ctx, event.BasketID)
		return
	}

	c.logger.Info("order created from basket", "basketId", event.BasketID)
}

func (c *BasketConfirmedConsumer) unmark(ctx context.Context, basketID string) {
	if err := c.deduplicator.Unmark(ctx, basketID); err != nil {
		c.logger.Error("unmark basket failed", "basketId", basketID, "error", err)
	}
}

func (c *BasketConfirmedConsumer) buildCommand(
	event BasketConfirmedIntegrationEvent,
) (commands.CreateOrderCommand, error) {
	basketID, err := kernel.UUIDFromString(event.BasketID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(basketID, event.Address.Street, event.Volume)
}

// Close releases the underlying reader.
func (c *BasketConfirmedConsumer) Close() error {
	return c.reader.Close()
}
