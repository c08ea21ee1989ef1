package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/application/eventhandlers"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// outboxBatchSize bounds one publishing pass; whatever is left waits for the
// next tick.
const outboxBatchSize = 20

// ProcessOutboxMessagesCommandHandler publishes pending outbox messages.
// Messages are taken oldest first; each one that publishes gets stamped as
// processed, each one that fails stays unprocessed and is retried on a later
// pass. Delivery is therefore at-least-once and consumers must deduplicate
// by event id.
type ProcessOutboxMessagesCommandHandler struct {
	outbox   ports.OutboxRepository
	registry eventhandlers.Registry
}

// NewProcessOutboxMessagesCommandHandler creates the handler.
func NewProcessOutboxMessagesCommandHandler(
	outbox ports.OutboxRepository,
	registry eventhandlers.Registry,
) ProcessOutboxMessagesCommandHandler {
	return ProcessOutboxMessagesCommandHandler{
		outbox:   outbox,
		registry: registry,
	}
}

// Handle runs one publishing pass over the outbox.
// A failing message does not block the rest of the batch; its error is
// collected and joined into the result after the whole batch has been tried.
func (h *ProcessOutboxMessagesCommandHandler) Handle(ctx context.Context, cmd ProcessOutboxMessagesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	messages, err := h.outbox.GetUnprocessed(ctx, outboxBatchSize)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return nil
	}

	var (
		published []kernel.UUID
		failures  []error
	)

	for _, message := range messages {
		if dispatchErr := h.registry.Dispatch(ctx, message.Type, message.Content); dispatchErr != nil {
			failures = append(failures, fmt.Errorf("outbox message %s: %w", message.ID, dispatchErr))
			continue
		}
		published = append(published, message.ID)
	}

	if len(published) > 0 {
		if err = h.outbox.MarkProcessed(ctx, published, time.Now().UTC()); err != nil {
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}
