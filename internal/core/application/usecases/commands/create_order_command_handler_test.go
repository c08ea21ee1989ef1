package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	resolved, err := kernel.NewLocation(4, 9)
	require.NoError(t, err)

	t.Run("resolves street and persists the order", func(t *testing.T) {
		ctx := t.Context()
		basketID := kernel.NewUUID()
		cmd, err := commands.NewCreateOrderCommand(basketID, "Lenina 1", 7)
		require.NoError(t, err)

		var captured *order.Order
		mockGeo := new(MockGeoClient)
		mockRepo := new(MockOrderRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockOrderUoWFactory)

		mockGeo.On("Resolve", ctx, "Lenina 1").Return(resolved, nil).Once()
		mockFactory.On("Create").Return(mockUoW).Once()
		mock.InOrder(
			mockUoW.On("Begin", ctx).Return(nil).Once(),
			mockUoW.On("OrderRepository").Return(mockRepo).Once(),
			mockRepo.On("Get", ctx, basketID).
				Return(nil, errs.NewObjectNotFoundError("orderID", basketID)).Once(),
			mockRepo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
				captured = o
				return true
			})).Return(nil).Once(),
			mockUoW.On("Commit", ctx).Return(nil).Once(),
			mockUoW.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewCreateOrderCommandHandler(mockFactory, mockGeo)

		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, captured)
		assert.True(t, captured.ID().IsEqual(basketID))
		assert.Equal(t, resolved, captured.Location())
		assert.Equal(t, 7, captured.Volume())
		assert.Equal(t, order.Created, captured.Status())

		mockGeo.AssertExpectations(t)
		mockUoW.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("retried basket is a no-op", func(t *testing.T) {
		ctx := t.Context()
		basketID := kernel.NewUUID()
		cmd, err := commands.NewCreateOrderCommand(basketID, "Lenina 1", 7)
		require.NoError(t, err)

		existingLocation, err := kernel.NewLocation(4, 9)
		require.NoError(t, err)
		existing, err := order.NewOrder(basketID, existingLocation, 7)
		require.NoError(t, err)

		mockGeo := new(MockGeoClient)
		mockRepo := new(MockOrderRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockOrderUoWFactory)

		mockGeo.On("Resolve", ctx, "Lenina 1").Return(resolved, nil).Once()
		mockFactory.On("Create").Return(mockUoW).Once()
		mockUoW.On("Begin", ctx).Return(nil).Once()
		mockUoW.On("OrderRepository").Return(mockRepo).Once()
		mockUoW.On("Rollback", ctx).Return(nil).Once()
		mockRepo.On("Get", ctx, basketID).Return(existing, nil).Once()

		handler := commands.NewCreateOrderCommandHandler(mockFactory, mockGeo)

		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("fails before opening a transaction when geocoding fails", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "Nowhere 0", 7)
		require.NoError(t, err)

		geoError := errors.New("street not found")
		mockGeo := new(MockGeoClient)
		mockFactory := new(MockOrderUoWFactory)

		mockGeo.On("Resolve", ctx, "Nowhere 0").Return(nil, geoError).Once()

		handler := commands.NewCreateOrderCommandHandler(mockFactory, mockGeo)

		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, geoError)
		mockFactory.AssertNotCalled(t, "Create")
	})

	t.Run("rejects an unconstructed command", func(t *testing.T) {
		handler := commands.NewCreateOrderCommandHandler(new(MockOrderUoWFactory), new(MockGeoClient))

		err := handler.Handle(t.Context(), commands.CreateOrderCommand{})

		require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	})
}

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("rejects blank street", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "", 7)

		require.ErrorIs(t, err, commands.ErrStreetIsRequired)
	})

	t.Run("rejects non-positive volume", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "Lenina 1", 0)

		require.ErrorIs(t, err, commands.ErrVolumeIsInvalid)
	})

	t.Run("rejects invalid basket id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewCreateOrderCommand(invalidID, "Lenina 1", 7)

		require.Error(t, err)
	})
}
