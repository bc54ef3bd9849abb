// internal/models/common_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxU128Decimal = "340282366920938463463374607431768211455"

func TestU128Parse(t *testing.T) {
	u, err := ParseU128("12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", u.String())
	assert.Equal(t, uint64(12345), u.Uint64())

	u, err = ParseU128(maxU128Decimal)
	require.NoError(t, err)
	assert.Equal(t, maxU128Decimal, u.String())

	_, err = ParseU128("340282366920938463463374607431768211456") // 2^128
	assert.Error(t, err)

	_, err = ParseU128("not a number")
	assert.Error(t, err)
}

func TestU128AddChecked(t *testing.T) {
	sum, ok := NewU128(40).AddChecked(NewU128(2))
	require.True(t, ok)
	assert.Equal(t, "42", sum.String())

	max, err := ParseU128(maxU128Decimal)
	require.NoError(t, err)

	// The top of the range is still reachable.
	almostMax, err := ParseU128("340282366920938463463374607431768211454")
	require.NoError(t, err)
	sum, ok = almostMax.AddChecked(NewU128(1))
	require.True(t, ok)
	assert.Zero(t, sum.Cmp(max))

	// One past it is not.
	_, ok = max.AddChecked(NewU128(1))
	assert.False(t, ok)
}

func TestU128DatabaseRoundTrip(t *testing.T) {
	u, err := ParseU128(maxU128Decimal)
	require.NoError(t, err)

	value, err := u.Value()
	require.NoError(t, err)
	assert.Equal(t, maxU128Decimal, value)

	var scanned U128
	require.NoError(t, scanned.Scan(maxU128Decimal))
	assert.Zero(t, scanned.Cmp(u))

	require.NoError(t, scanned.Scan([]byte("77")))
	assert.Equal(t, "77", scanned.String())

	require.NoError(t, scanned.Scan(int64(500)))
	assert.Equal(t, "500", scanned.String())

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())

	assert.Error(t, scanned.Scan(int64(-1)))
	assert.Error(t, scanned.Scan(3.14))
}

func TestU128JSON(t *testing.T) {
	u, err := ParseU128(maxU128Decimal)
	require.NoError(t, err)

	// Serialized as a decimal string, never a JSON number.
	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.Equal(t, `"`+maxU128Decimal+`"`, string(data))

	var decoded U128
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Zero(t, decoded.Cmp(u))
}
