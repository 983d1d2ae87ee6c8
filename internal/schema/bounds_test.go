package schema

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerBounds(t *testing.T) {
	b, ok := IntegerBounds("tinyint")
	require.True(t, ok)
	assert.True(t, b.Min.Equal(decimal.NewFromInt(-128)))
	assert.True(t, b.Max.Equal(decimal.NewFromInt(127)))

	b, ok = IntegerBounds("bigint unsigned")
	require.True(t, ok)
	assert.True(t, b.Min.IsZero())
	assert.Equal(t, "18446744073709551615", b.Max.String())

	_, ok = IntegerBounds("bit")
	assert.False(t, ok)
}

func TestNumberBounds(t *testing.T) {
	b, ok := NumberBounds("decimal")
	require.True(t, ok)
	assert.Len(t, b.Max.String(), 65)
	assert.True(t, b.Min.Equal(b.Max.Neg()))

	b, ok = NumberBounds("float unsigned")
	require.True(t, ok)
	assert.True(t, b.Min.IsZero())
	assert.True(t, b.Max.GreaterThan(decimal.New(3, 38)))
}

func TestBoundsCoverEveryLabel(t *testing.T) {
	for _, p := range integerSubtypes {
		for _, l := range []string{p, p + " unsigned"} {
			b, ok := IntegerBounds(l)
			require.True(t, ok, l)
			assert.True(t, b.Min.LessThan(b.Max), l)
		}
	}
	for _, p := range numberSubtypes {
		for _, l := range []string{p, p + " unsigned"} {
			_, ok := NumberBounds(l)
			assert.True(t, ok, l)
		}
	}
}
