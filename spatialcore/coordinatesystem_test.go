package spatialcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitAxis(t *testing.T, dir []float64) Axis {
	t.Helper()
	a, err := NewAxis("m", dir, NumberSetR, -10, 10, 2048)
	require.NoError(t, err)
	return a
}

func TestUniverseCoordinateSystemHasNoAxes(t *testing.T) {
	cs := UniverseCoordinateSystem()
	assert.True(t, cs.IsUniverse())
	assert.Equal(t, DimensionK, cs.Dimensions())
	_, err := cs.Axes()
	require.Error(t, err)
}

func TestAffineSystemEncodeDecodeRoundTrip(t *testing.T) {
	axes := []Axis{
		unitAxis(t, []float64{1, 0, 0}),
		unitAxis(t, []float64{0, 1, 0}),
		unitAxis(t, []float64{0, 0, 1}),
	}
	cs := NewAffineSystem([]float64{0, 0, 0}, axes)

	encoded, err := cs.Encode([]float64{1, 2, 3})
	require.NoError(t, err)

	decoded, err := cs.Decode(encoded)
	require.NoError(t, err)

	for i, v := range decoded {
		assert.InDelta(t, []float64{1, 2, 3}[i], v, 20.0/2048)
	}
}

func TestAffineSystemRebaseAndAbsolutePositionInverse(t *testing.T) {
	axes := []Axis{
		unitAxis(t, []float64{1, 0, 0}),
		unitAxis(t, []float64{0, 1, 0}),
		unitAxis(t, []float64{0, 0, 1}),
	}
	cs := NewAffineSystem([]float64{10, 0, 0}, axes)

	universePoint := PositionFromFloat64s([]float64{11, 2, 3})
	encoded, err := cs.Rebase(universePoint)
	require.NoError(t, err)

	back, err := cs.AbsolutePosition(encoded)
	require.NoError(t, err)

	for i, v := range back.ToFloat64s() {
		assert.InDelta(t, universePoint.ToFloat64s()[i], v, 20.0/2048)
	}
}

func TestCoordinateSystemVolume(t *testing.T) {
	axes := []Axis{unitAxis(t, []float64{1, 0, 0}), unitAxis(t, []float64{0, 1, 0}), unitAxis(t, []float64{0, 0, 1})}
	cs := NewAffineSystem([]float64{0, 0, 0}, axes)
	assert.InDelta(t, 20.0*20.0*20.0, cs.Volume(), 1e-6)
}
