package kernel_test

import (
	"encoding/json"
	"testing"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	t.Run("new UUID is valid and unique", func(t *testing.T) {
		a := kernel.NewUUID()
		b := kernel.NewUUID()

		require.NoError(t, a.Validate())
		require.NoError(t, b.Validate())
		assert.False(t, a.IsEqual(b))
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.UUID

		err := id.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("round trips through string form", func(t *testing.T) {
		original := kernel.NewUUID()

		restored, err := kernel.UUIDFromString(original.String())

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("rejects the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		require.Error(t, err)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round trips through byte form", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x01, 0x02})

		require.Error(t, err)
	})
}

func TestUUID_JSON(t *testing.T) {
	t.Run("marshals as canonical string", func(t *testing.T) {
		id := kernel.NewUUID()

		data, err := json.Marshal(id)

		require.NoError(t, err)
		assert.JSONEq(t, `"`+id.String()+`"`, string(data))
	})

	t.Run("unmarshal restores the identifier", func(t *testing.T) {
		id := kernel.NewUUID()
		data, _ := json.Marshal(id)

		var restored kernel.UUID
		require.NoError(t, json.Unmarshal(data, &restored))

		assert.True(t, id.IsEqual(restored))
	})

	t.Run("unmarshal rejects nil UUID", func(t *testing.T) {
		var restored kernel.UUID

		err := json.Unmarshal([]byte(`"00000000-0000-0000-0000-000000000000"`), &restored)

		require.Error(t, err)
	})
}
