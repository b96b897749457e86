package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidemark-gis/spatialcore/spatialcore"
)

func buildSnapshotBuilder(t *testing.T) *Builder {
	t.Helper()
	b := NewBuilder()
	b.AddSpace("alpha", []float64{0, 0, 0}, []spatialcore.Axis{
		mustAxis(t, []float64{1, 0, 0}),
		mustAxis(t, []float64{0, 1, 0}),
		mustAxis(t, []float64{0, 0, 1}),
	})

	properties := []spatialcore.Properties{
		spatialcore.NewFeatureProperties("a"),
		spatialcore.NewFeatureProperties("b"),
	}
	objects := []CoreObject{
		{SpaceID: "alpha", Position: []float64{-0.5, -0.5, -0.5}, Value: 0},
		{SpaceID: "alpha", Position: []float64{0.25, 0.25, 0.25}, Value: 1},
	}
	b.AddCore("ds", "Test Dataset", "1.0", properties, objects, 0, nil)
	return b
}

func mustAxis(t *testing.T, dir []float64) spatialcore.Axis {
	t.Helper()
	a, err := spatialcore.NewAxis("m", dir, spatialcore.NumberSetR, -1, 1, 4096)
	require.NoError(t, err)
	return a
}

func TestBuilderBuildDirectly(t *testing.T) {
	db, err := buildSnapshotBuilder(t).Build()
	require.NoError(t, err)

	space, err := db.Space("alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", space.Name())

	core, err := db.Core("ds")
	require.NoError(t, err)
	assert.Equal(t, "Test Dataset", core.Name())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	data, err := buildSnapshotBuilder(t).Save()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	db, err := Load(data)
	require.NoError(t, err)

	core, err := db.Core("ds")
	require.NoError(t, err)

	params := &spatialcore.CoreQueryParameters{Database: db}
	found, err := core.GetByID(params, "a")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.InDeltaSlice(t, []float64{-0.5, -0.5, -0.5}, found[0].Position.ToFloat64s(), 1.0/2048)
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load([]byte{0xff, 0xff, 0xff})
	require.Error(t, err)
	var deserializeErr *spatialcore.ErrDeserialize
	assert.ErrorAs(t, err, &deserializeErr)
}
