package courier_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoragePlace(t *testing.T) {
	t.Run("creates empty place", func(t *testing.T) {
		place, err := courier.NewStoragePlace(kernel.NewUUID(), "bag", 10)

		require.NoError(t, err)
		require.NoError(t, place.Validate())
		assert.Equal(t, "bag", place.Name())
		assert.Equal(t, 10, place.TotalVolume())
		assert.Nil(t, place.OrderID())
		assert.False(t, place.IsOccupied())
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := courier.NewStoragePlace(kernel.NewUUID(), "", 10)

		require.Error(t, err)
	})

	t.Run("rejects non-positive volume", func(t *testing.T) {
		for _, volume := range []int{0, -5} {
			_, err := courier.NewStoragePlace(kernel.NewUUID(), "bag", volume)
			require.Error(t, err)
		}
	})

	t.Run("rejects invalid id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := courier.NewStoragePlace(invalidID, "bag", 10)

		require.Error(t, err)
	})
}

func TestStoragePlace_CanStore(t *testing.T) {
	newPlace := func(t *testing.T) *courier.StoragePlace {
		t.Helper()
		place, err := courier.NewStoragePlace(kernel.NewUUID(), "bag", 10)
		require.NoError(t, err)
		return place
	}

	t.Run("true for any volume within capacity", func(t *testing.T) {
		place := newPlace(t)

		for _, volume := range []int{1, 5, 10} {
			canStore, err := place.CanStore(volume)
			require.NoError(t, err)
			assert.True(t, canStore, "volume %d", volume)
		}
	})

	t.Run("false above capacity", func(t *testing.T) {
		place := newPlace(t)

		canStore, err := place.CanStore(11)

		require.NoError(t, err)
		assert.False(t, canStore)
	})

	t.Run("non-positive volume is a validation error", func(t *testing.T) {
		place := newPlace(t)

		for _, volume := range []int{0, -1} {
			_, err := place.CanStore(volume)
			require.Error(t, err)
		}
	})

	t.Run("false for any volume while occupied", func(t *testing.T) {
		place := newPlace(t)
		require.NoError(t, place.Store(kernel.NewUUID(), 1))

		for _, volume := range []int{1, 10} {
			canStore, err := place.CanStore(volume)
			require.NoError(t, err)
			assert.False(t, canStore, "volume %d", volume)
		}
	})
}

func TestStoragePlace_Store(t *testing.T) {
	t.Run("occupies the place", func(t *testing.T) {
		place, _ := courier.NewStoragePlace(kernel.NewUUID(), "bag", 10)
		orderID := kernel.NewUUID()

		err := place.Store(orderID, 7)

		require.NoError(t, err)
		assert.True(t, place.IsOccupied())
		require.NotNil(t, place.OrderID())
		assert.True(t, place.OrderID().IsEqual(orderID))
	})

	t.Run("fails when already occupied", func(t *testing.T) {
		place, _ := courier.NewStoragePlace(kernel.NewUUID(), "bag", 10)
		require.NoError(t, place.Store(kernel.NewUUID(), 5))

		err := place.Store(kernel.NewUUID(), 1)

		require.ErrorIs(t, err, courier.ErrCannotStoreOrderInThisStoragePlace)
	})

	t.Run("fails above capacity", func(t *testing.T) {
		place, _ := courier.NewStoragePlace(kernel.NewUUID(), "bag", 10)

		err := place.Store(kernel.NewUUID(), 11)

		require.ErrorIs(t, err, courier.ErrCannotStoreOrderInThisStoragePlace)
	})

	t.Run("fails with invalid order id", func(t *testing.T) {
		place, _ := courier.NewStoragePlace(kernel.NewUUID(), "bag", 10)
		var invalidID kernel.UUID

		err := place.Store(invalidID, 5)

		require.Error(t, err)
		assert.False(t, place.IsOccupied())
	})
}

func TestStoragePlace_Clear(t *testing.T) {
	t.Run("frees the place", func(t *testing.T) {
		place, _ := courier.NewStoragePlace(kernel.NewUUID(), "bag", 10)
		require.NoError(t, place.Store(kernel.NewUUID(), 5))

		place.Clear()

		assert.False(t, place.IsOccupied())
		assert.Nil(t, place.OrderID())

		canStore, err := place.CanStore(10)
		require.NoError(t, err)
		assert.True(t, canStore)
	})

	t.Run("is idempotent on an empty place", func(t *testing.T) {
		place, _ := courier.NewStoragePlace(kernel.NewUUID(), "bag", 10)

		place.Clear()
		place.Clear()

		assert.False(t, place.IsOccupied())
	})
}

func TestRestoreStoragePlace(t *testing.T) {
	t.Run("restores occupancy", func(t *testing.T) {
		orderID := kernel.NewUUID()

		place, err := courier.RestoreStoragePlace(kernel.NewUUID(), "bag", 10, &orderID)

		require.NoError(t, err)
		assert.True(t, place.IsOccupied())
		assert.True(t, place.OrderID().IsEqual(orderID))
	})

	t.Run("restores empty place", func(t *testing.T) {
		place, err := courier.RestoreStoragePlace(kernel.NewUUID(), "bag", 10, nil)

		require.NoError(t, err)
		assert.False(t, place.IsOccupied())
	})
}
