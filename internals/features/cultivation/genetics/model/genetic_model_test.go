package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneticTypeScanNormalizes(t *testing.T) {
	var gt GeneticType

	require.NoError(t, gt.Scan("  SATIVA "))
	assert.Equal(t, GeneticTypeSativa, gt)

	require.NoError(t, gt.Scan([]byte("Hybrid")))
	assert.Equal(t, GeneticTypeHybrid, gt)

	require.NoError(t, gt.Scan(nil))
	assert.Equal(t, GeneticType(""), gt)
}

func TestGeneticTypeValueNormalizes(t *testing.T) {
	v, err := GeneticType(" Indica ").Value()
	require.NoError(t, err)
	assert.Equal(t, "indica", v)
}

func TestGeneticModelTableName(t *testing.T) {
	assert.Equal(t, "genetics", GeneticModel{}.TableName())
}
