package kernel_test

import (
	"encoding/json"
	"testing"

	"workshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDFromString(t *testing.T) {
	t.Run("wraps parse errors", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("must variant panics on bad input", func(t *testing.T) {
		assert.Panics(t, func() { kernel.MustUUIDFromString("curtain") })
		assert.NotPanics(t, func() { kernel.MustUUIDFromString("550e8400-e29b-41d4-a716-446655440000") })
	})
}

func TestUUIDFromBytes_RejectsNil(t *testing.T) {
	_, err := kernel.UUIDFromBytes(make([]byte, 16))

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID
	assert.True(t, zero.IsZero())
	require.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
	assert.NoError(t, kernel.NewUUID().Validate())
}

func TestUUIDFromGoogle(t *testing.T) {
	t.Run("rejects the nil uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromGoogle(uuid.Nil)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("wraps a random uuid", func(t *testing.T) {
		raw := uuid.New()
		id, err := kernel.UUIDFromGoogle(raw)

		require.NoError(t, err)
		assert.Equal(t, raw, id.Bytes())
	})
}

func TestUUID_Text(t *testing.T) {
	t.Run("round trips through text", func(t *testing.T) {
		id := kernel.NewUUID()
		text, err := id.MarshalText()
		require.NoError(t, err)

		var parsed kernel.UUID
		require.NoError(t, parsed.UnmarshalText(text))
		assert.True(t, id.IsEqual(parsed))
	})

	t.Run("decodes as a json field", func(t *testing.T) {
		var body struct {
			DraftID kernel.UUID `json:"draft_id"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"draft_id":"550e8400-e29b-41d4-a716-446655440000"}`), &body))
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", body.DraftID.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var parsed kernel.UUID
		require.Error(t, parsed.UnmarshalText([]byte("curtain")))
	})
}

func TestUUIDPtrEqual(t *testing.T) {
	a := kernel.NewUUID()
	b := a
	c := kernel.NewUUID()

	assert.True(t, kernel.UUIDPtrEqual(nil, nil))
	assert.True(t, kernel.UUIDPtrEqual(&a, &b))
	assert.False(t, kernel.UUIDPtrEqual(&a, &c))
	assert.False(t, kernel.UUIDPtrEqual(&a, nil))
}
