package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntCoerceRange(t *testing.T) {
	v, err := Int.Coerce(float64(42))
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = Int.Coerce(float64(int64(1) << 40))
	assert.Error(t, err, "Int must reject values outside the 32-bit signed range")

	_, err = Int.Coerce(3.14)
	assert.Error(t, err, "Int must reject non-integral values")
}

func TestFloatCoerce(t *testing.T) {
	v, err := Float.Coerce(3.14)
	require.NoError(t, err)
	assert.Equal(t, 3.14, v)

	v, err = Float.Coerce(2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestIDCoerceAcceptsStringAndInt(t *testing.T) {
	v, err := ID.Coerce("abc-123")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", v)

	v, err = ID.Coerce(float64(7))
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	_, err = ID.Coerce(3.5)
	assert.Error(t, err, "ID must reject a fractional numeric value")
}

func TestIDCoerceRoundTripsUUID(t *testing.T) {
	const uuidStr = "123e4567-e89b-12d3-a456-426614174000"
	v, err := ID.Coerce(uuidStr)
	require.NoError(t, err)
	assert.Equal(t, uuidStr, v)

	_, err = ID.Coerce("123e4567-not-a-uuid")
	require.NoError(t, err, "a non-UUID-shaped string is still a valid opaque ID")
}

func TestBooleanCoerce(t *testing.T) {
	v, err := Boolean.Coerce(true)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = Boolean.Coerce("true")
	assert.Error(t, err)
}
