package spatialcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSubPositionRoundTrip(t *testing.T) {
	a := PositionFromFloat64s([]float64{1, 2, 3})
	b := PositionFromFloat64s([]float64{0.5, 0.5, 0.5})

	sum, err := AddPosition(a, b)
	require.NoError(t, err)

	back, err := SubPosition(sum, b)
	require.NoError(t, err)

	assert.InDeltaSlice(t, a.ToFloat64s(), back.ToFloat64s(), 1e-9)
}

func TestAddPositionDimensionMismatch(t *testing.T) {
	a := PositionFromFloat64s([]float64{1, 2})
	b := PositionFromFloat64s([]float64{1, 2, 3})
	_, err := AddPosition(a, b)
	require.Error(t, err)
	var dimErr *ErrDimensionMismatch
	assert.ErrorAs(t, err, &dimErr)
}

func TestComparePositionNoPartialOrder(t *testing.T) {
	a := PositionFromUint64s([]uint64{1, 5})
	b := PositionFromUint64s([]uint64{5, 1})
	_, err := ComparePosition(a, b)
	assert.ErrorIs(t, err, ErrNoPartialOrder)
}

func TestComparePositionTotalOrder(t *testing.T) {
	a := PositionFromUint64s([]uint64{1, 1})
	b := PositionFromUint64s([]uint64{2, 2})
	c, err := ComparePosition(a, b)
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestLessOrEqual(t *testing.T) {
	a := PositionFromUint64s([]uint64{1, 1})
	b := PositionFromUint64s([]uint64{1, 2})
	ok, err := LessOrEqual(a, b)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMaxMinPosition(t *testing.T) {
	a := PositionFromUint64s([]uint64{1, 9})
	b := PositionFromUint64s([]uint64{5, 2})

	max, err := MaxPosition(a, b)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 9}, max.ToUint64s())

	min, err := MinPosition(a, b)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, min.ToUint64s())
}

func TestReducePrecision(t *testing.T) {
	p := PositionFromUint64s([]uint64{8, 16})
	reduced := p.ReducePrecision(2)
	assert.Equal(t, []uint64{2, 4}, reduced.ToUint64s())
}

func TestUnitNormalizesToLengthOne(t *testing.T) {
	p := PositionFromFloat64s([]float64{3, 4})
	u := p.Unit()
	assert.InDelta(t, 1.0, u.Norm(), 1e-12)
}
