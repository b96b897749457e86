package spatialcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseUniverseIsAlwaysResolvable(t *testing.T) {
	db := NewDatabase()
	space, err := db.Space(UniverseName)
	require.NoError(t, err)
	assert.Same(t, UniverseSpace(), space)
}

func TestDatabaseSpaceNotFound(t *testing.T) {
	db := NewDatabase()
	_, err := db.Space("missing")
	require.Error(t, err)
	var notFound *ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestDatabaseRejectsUniverseNameOverride(t *testing.T) {
	db := NewDatabase()
	err := db.AddSpace(NewSpace(UniverseName, UniverseCoordinateSystem()))
	require.Error(t, err)
	var inconsistent *ErrInconsistentCatalog
	assert.ErrorAs(t, err, &inconsistent)
}

func TestDatabaseAddSpaceIdenticalDefinitionIsNoOp(t *testing.T) {
	db := NewDatabase()
	first := testSpace(t, "alpha")
	require.NoError(t, db.AddSpace(*first))

	second := testSpace(t, "alpha")
	require.NoError(t, db.AddSpace(*second))

	assert.ElementsMatch(t, []string{"alpha"}, db.SpaceKeys())
}

func TestDatabaseAddSpaceConflictingDefinitionFails(t *testing.T) {
	db := NewDatabase()
	require.NoError(t, db.AddSpace(*testSpace(t, "alpha")))

	axis := func(dir []float64) Axis {
		a, err := NewAxis("m", dir, NumberSetR, -1, 1, 4096)
		require.NoError(t, err)
		return a
	}
	axes := []Axis{axis([]float64{1, 0, 0}), axis([]float64{0, 1, 0}), axis([]float64{0, 0, 1})}
	conflicting := NewSpace("alpha", NewAffineSystem([]float64{5, 0, 0}, axes))

	err := db.AddSpace(conflicting)
	require.Error(t, err)
	var inconsistent *ErrInconsistentCatalog
	assert.ErrorAs(t, err, &inconsistent)
}

func TestDatabaseAddCoreDuplicateNameFails(t *testing.T) {
	db := NewDatabase()
	core, err := NewCore("ds", "1.0", nil, nil, nil, CoreBuildOptions{})
	require.NoError(t, err)

	require.NoError(t, db.AddCore("ds", core))
	err = db.AddCore("ds", core)
	require.Error(t, err)
}

func TestDatabaseKeys(t *testing.T) {
	db := NewDatabase()
	space := testSpace(t, "alpha")
	require.NoError(t, db.AddSpace(*space))

	core, err := NewCore("ds", "1.0", nil, nil, nil, CoreBuildOptions{})
	require.NoError(t, err)
	require.NoError(t, db.AddCore("ds", core))

	assert.ElementsMatch(t, []string{"alpha"}, db.SpaceKeys())
	assert.ElementsMatch(t, []string{"ds"}, db.CoreKeys())
}

func TestDatabaseIDsDifferAcrossInstances(t *testing.T) {
	a := NewDatabase()
	b := NewDatabase()
	assert.NotEqual(t, a.ID(), b.ID())
}
