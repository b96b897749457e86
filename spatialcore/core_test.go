package spatialcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpace(t *testing.T, name string) *Space {
	t.Helper()
	axis := func(dir []float64) Axis {
		a, err := NewAxis("m", dir, NumberSetR, -1, 1, 4096)
		require.NoError(t, err)
		return a
	}
	axes := []Axis{axis([]float64{1, 0, 0}), axis([]float64{0, 1, 0}), axis([]float64{0, 0, 1})}
	space := NewSpace(name, NewAffineSystem([]float64{0, 0, 0}, axes))
	return &space
}

func buildTestCore(t *testing.T) (*Core, *Database) {
	t.Helper()
	alpha := testSpace(t, "alpha")

	db := NewDatabase()
	require.NoError(t, db.AddSpace(*alpha))

	properties := []Properties{
		NewFeatureProperties("a"),
		NewFeatureProperties("b"),
		NewFeatureProperties("c"),
	}

	objects := []SpaceSetObject{
		NewSpaceSetObject("alpha", PositionFromFloat64s([]float64{-0.5, -0.5, -0.5}), CoordinateFromUint64(0)),
		NewSpaceSetObject("alpha", PositionFromFloat64s([]float64{0.25, 0.25, 0.25}), CoordinateFromUint64(1)),
		NewSpaceSetObject("alpha", PositionFromFloat64s([]float64{0.25, 0.25, 0.25}), CoordinateFromUint64(2)),
	}

	core, err := NewCore("test-dataset", "1.0", []*Space{alpha}, properties, objects, CoreBuildOptions{})
	require.NoError(t, err)
	require.NoError(t, db.AddCore("test-dataset", core))

	return core, db
}

func TestCoreGetByID(t *testing.T) {
	core, db := buildTestCore(t)
	params := &CoreQueryParameters{Database: db}

	found, err := core.GetByID(params, "a")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.InDeltaSlice(t, []float64{-0.5, -0.5, -0.5}, found[0].Position.ToFloat64s(), 1.0/2048)
}

func TestCoreGetByIDUnknownReturnsEmpty(t *testing.T) {
	core, db := buildTestCore(t)
	params := &CoreQueryParameters{Database: db}

	found, err := core.GetByID(params, "does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestCoreGetByPositions(t *testing.T) {
	core, db := buildTestCore(t)
	params := &CoreQueryParameters{Database: db}

	found, err := core.GetByPositions(params, []Position{PositionFromFloat64s([]float64{-0.5, -0.5, -0.5})}, "alpha")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "a", found[0].Value.ID())
}

func TestCoreGetByShape(t *testing.T) {
	core, db := buildTestCore(t)
	params := &CoreQueryParameters{Database: db}

	box, err := NewBoundingBoxShape(
		PositionFromFloat64s([]float64{0, 0, 0}),
		PositionFromFloat64s([]float64{1, 1, 1}),
	)
	require.NoError(t, err)

	found, err := core.GetByShape(params, box, "alpha")
	require.NoError(t, err)
	assert.Len(t, found, 2) // b and c, co-located inside the box
}

func TestCoreGetByLabelDropsOwnOffset(t *testing.T) {
	core, db := buildTestCore(t)
	params := &CoreQueryParameters{Database: db}

	found, err := core.GetByLabel(params, "b")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "c", found[0].Value.ID())
}

func TestCoreIsEmptyForUnindexedSpace(t *testing.T) {
	core, _ := buildTestCore(t)
	assert.False(t, core.IsEmpty("alpha"))
	assert.True(t, core.IsEmpty("never-indexed"))
}
