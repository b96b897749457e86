package spatialcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleObjects() []SpaceSetObject {
	return []SpaceSetObject{
		NewSpaceSetObject("local", PositionFromUint64s([]uint64{0, 0, 0}), CoordinateFromUint64(0)),
		NewSpaceSetObject("local", PositionFromUint64s([]uint64{10, 10, 10}), CoordinateFromUint64(1)),
		NewSpaceSetObject("local", PositionFromUint64s([]uint64{20, 20, 20}), CoordinateFromUint64(2)),
	}
}

func TestSpatialIndexFindExact(t *testing.T) {
	idx, err := NewSpatialIndex(1, Scale{0, 0, 0}, sampleObjects())
	require.NoError(t, err)

	found := idx.Find(PositionFromUint64s([]uint64{10, 10, 10}))
	require.Len(t, found, 1)
	assert.Equal(t, uint64(1), found[0].Value().Uint64())
}

func TestSpatialIndexFindByShapeBoxQuery(t *testing.T) {
	idx, err := NewSpatialIndex(1, Scale{0, 0, 0}, sampleObjects())
	require.NoError(t, err)

	box, err := NewBoundingBoxShape(
		PositionFromUint64s([]uint64{0, 0, 0}),
		PositionFromUint64s([]uint64{15, 15, 15}),
	)
	require.NoError(t, err)

	found, err := idx.FindByShape(box, nil)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestSpatialIndexFindByShapeEmptyIntersection(t *testing.T) {
	idx, err := NewSpatialIndex(1, Scale{0, 0, 0}, sampleObjects())
	require.NoError(t, err)

	box, err := NewBoundingBoxShape(
		PositionFromUint64s([]uint64{0, 0, 0}),
		PositionFromUint64s([]uint64{5, 5, 5}),
	)
	require.NoError(t, err)
	viewport, err := NewBoundingBoxShape(
		PositionFromUint64s([]uint64{100, 100, 100}),
		PositionFromUint64s([]uint64{200, 200, 200}),
	)
	require.NoError(t, err)

	_, err = idx.FindByShape(box, &viewport)
	require.Error(t, err)
	var empty *ErrEmptyIntersection
	assert.ErrorAs(t, err, &empty)
}

func TestSpatialIndexFindByShapePointOutOfViewport(t *testing.T) {
	idx, err := NewSpatialIndex(1, Scale{0, 0, 0}, sampleObjects())
	require.NoError(t, err)

	point := NewPointShape(PositionFromUint64s([]uint64{0, 0, 0}))
	viewport, err := NewBoundingBoxShape(
		PositionFromUint64s([]uint64{100, 100, 100}),
		PositionFromUint64s([]uint64{200, 200, 200}),
	)
	require.NoError(t, err)

	_, err = idx.FindByShape(point, &viewport)
	require.Error(t, err)
	var outOfViewport *ErrOutOfViewport
	assert.ErrorAs(t, err, &outOfViewport)
}

func TestSpatialIndexFindByShapeSphereQuery(t *testing.T) {
	idx, err := NewSpatialIndex(1, Scale{0, 0, 0}, sampleObjects())
	require.NoError(t, err)

	sphere := NewHyperSphereShape(PositionFromUint64s([]uint64{0, 0, 0}), CoordinateFromUint64(5))
	found, err := idx.FindByShape(sphere, nil)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, uint64(0), found[0].Value().Uint64())
}

func TestSpatialIndexFindByValue(t *testing.T) {
	idx, err := NewSpatialIndex(1, Scale{0, 0, 0}, sampleObjects())
	require.NoError(t, err)

	found := idx.FindByValue("local", 2)
	require.Len(t, found, 1)
	assert.Equal(t, []uint64{20, 20, 20}, found[0].Position().ToUint64s())
}
