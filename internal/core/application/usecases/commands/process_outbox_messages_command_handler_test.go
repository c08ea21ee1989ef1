package commands_test

import (
	"encoding/json"
	"testing"
	"time"

	"dispatch/internal/core/application/eventhandlers"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeOutboxMessage(t *testing.T) (ports.OutboxMessage, order.CompletedDomainEvent) {
	t.Helper()
	event := order.NewCompletedDomainEvent(kernel.NewUUID(), kernel.NewUUID())
	content, err := json.Marshal(event)
	require.NoError(t, err)

	return ports.OutboxMessage{
		ID:            event.EventID(),
		Type:          event.EventType(),
		Content:       content,
		OccurredOnUTC: event.OccurredAtUTC(),
	}, event
}

func TestProcessOutboxMessagesCommandHandler_Handle(t *testing.T) {
	t.Run("publishes and stamps the batch", func(t *testing.T) {
		ctx := t.Context()
		first, firstEvent := makeOutboxMessage(t)
		second, secondEvent := makeOutboxMessage(t)

		mockOutbox := new(MockOutboxRepository)
		mockProducer := new(MockMessageBusProducer)

		mockOutbox.On("GetUnprocessed", ctx, 20).
			Return([]ports.OutboxMessage{first, second}, nil).Once()
		mockProducer.On("PublishOrderCompleted", ctx, firstEvent).Return(nil).Once()
		mockProducer.On("PublishOrderCompleted", ctx, secondEvent).Return(nil).Once()
		mockOutbox.On("MarkProcessed", ctx, []kernel.UUID{first.ID, second.ID}, mock.AnythingOfType("time.Time")).
			Return(nil).Once()

		handler := commands.NewProcessOutboxMessagesCommandHandler(
			mockOutbox, eventhandlers.NewRegistry(mockProducer),
		)

		err := handler.Handle(ctx, commands.NewProcessOutboxMessagesCommand())

		require.NoError(t, err)
		mockOutbox.AssertExpectations(t)
		mockProducer.AssertExpectations(t)
	})

	t.Run("a failing message does not block the rest", func(t *testing.T) {
		ctx := t.Context()
		failing, failingEvent := makeOutboxMessage(t)
		healthy, healthyEvent := makeOutboxMessage(t)

		mockOutbox := new(MockOutboxRepository)
		mockProducer := new(MockMessageBusProducer)

		mockOutbox.On("GetUnprocessed", ctx, 20).
			Return([]ports.OutboxMessage{failing, healthy}, nil).Once()
		mockProducer.On("PublishOrderCompleted", ctx, failingEvent).Return(assert.AnError).Once()
		mockProducer.On("PublishOrderCompleted", ctx, healthyEvent).Return(nil).Once()
		mockOutbox.On("MarkProcessed", ctx, []kernel.UUID{healthy.ID}, mock.AnythingOfType("time.Time")).
			Return(nil).Once()

		handler := commands.NewProcessOutboxMessagesCommandHandler(
			mockOutbox, eventhandlers.NewRegistry(mockProducer),
		)

		err := handler.Handle(ctx, commands.NewProcessOutboxMessagesCommand())

		require.ErrorIs(t, err, assert.AnError)
		mockOutbox.AssertExpectations(t)
	})

	t.Run("unknown event type stays unprocessed", func(t *testing.T) {
		ctx := t.Context()
		unknown := ports.OutboxMessage{
			ID:            kernel.NewUUID(),
			Type:          "SomethingElse",
			Content:       []byte(`{}`),
			OccurredOnUTC: time.Now().UTC(),
		}

		mockOutbox := new(MockOutboxRepository)
		mockProducer := new(MockMessageBusProducer)

		mockOutbox.On("GetUnprocessed", ctx, 20).
			Return([]ports.OutboxMessage{unknown}, nil).Once()

		handler := commands.NewProcessOutboxMessagesCommandHandler(
			mockOutbox, eventhandlers.NewRegistry(mockProducer),
		)

		err := handler.Handle(ctx, commands.NewProcessOutboxMessagesCommand())

		require.Error(t, err)
		mockOutbox.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
		mockProducer.AssertNotCalled(t, "PublishOrderCompleted", mock.Anything, mock.Anything)
	})

	t.Run("empty outbox is a no-op", func(t *testing.T) {
		ctx := t.Context()
		mockOutbox := new(MockOutboxRepository)

		mockOutbox.On("GetUnprocessed", ctx, 20).Return([]ports.OutboxMessage{}, nil).Once()

		handler := commands.NewProcessOutboxMessagesCommandHandler(
			mockOutbox, eventhandlers.NewRegistry(new(MockMessageBusProducer)),
		)

		err := handler.Handle(ctx, commands.NewProcessOutboxMessagesCommand())

		require.NoError(t, err)
		mockOutbox.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
	})
}
