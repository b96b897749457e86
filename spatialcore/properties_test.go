package spatialcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertiesEqualComparesIDAndTypeName(t *testing.T) {
	a := NewFeatureProperties("wreck-1")
	b := NewUnknownProperties("wreck-1", "OBSTRN")
	assert.False(t, a.Equal(b))
	assert.Equal(t, a.ID(), b.ID())
}

func TestFeaturePropertiesTypeName(t *testing.T) {
	p := NewFeatureProperties("buoy-1")
	assert.Equal(t, "Feature", p.TypeName())
}
