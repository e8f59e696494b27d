package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlantEnumScanNormalizes(t *testing.T) {
	var source PlantSource
	require.NoError(t, source.Scan("  TISSUE_CULTURE "))
	assert.Equal(t, PlantSourceTissueCulture, source)

	var stage PlantStage
	require.NoError(t, stage.Scan([]byte("Flowering")))
	assert.Equal(t, PlantStageFlowering, stage)

	var sex PlantSex
	require.NoError(t, sex.Scan(nil))
	assert.Equal(t, PlantSex(""), sex)

	var health PlantHealthStatus
	require.NoError(t, health.Scan("RECOVERING"))
	assert.Equal(t, PlantHealthRecovering, health)
}

func TestPlantEnumValueNormalizes(t *testing.T) {
	v, err := PlantStage(" Destroyed ").Value()
	require.NoError(t, err)
	assert.Equal(t, "destroyed", v)

	v, err = PlantSource("SEED").Value()
	require.NoError(t, err)
	assert.Equal(t, "seed", v)
}

func TestPlantModelTableName(t *testing.T) {
	assert.Equal(t, "plants", PlantModel{}.TableName())
}
