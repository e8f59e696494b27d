package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pModel "growlog_backend/internals/features/cultivation/plants/model"
)

func TestCreatePlantRequestToModelDefaults(t *testing.T) {
	creator := uuid.New()
	m := (&CreatePlantRequest{}).ToModel(creator)

	assert.Equal(t, pModel.PlantSourceSeed, m.PlantSource)
	assert.Equal(t, pModel.PlantStageSeedling, m.PlantStage)
	assert.Equal(t, pModel.PlantHealthHealthy, m.PlantHealthStatus)
	assert.Equal(t, 1, m.PlantGeneration)
	assert.False(t, m.PlantIsQuarantined)
	assert.Equal(t, creator, m.PlantCreatedBy)
	assert.Nil(t, m.PlantGeneticID)
	assert.Nil(t, m.PlantBatchID)
}

func TestCreatePlantRequestToModelOverrides(t *testing.T) {
	source := pModel.PlantSourceClone
	stage := pModel.PlantStageVegetative
	gen := 3
	quarantined := true
	mother := uuid.New()
	batch := uuid.New()

	r := CreatePlantRequest{
		PlantBatchID:       &batch,
		PlantSource:        &source,
		PlantStage:         &stage,
		PlantMotherID:      &mother,
		PlantGeneration:    &gen,
		PlantIsQuarantined: &quarantined,
	}
	m := r.ToModel(uuid.New())

	assert.Equal(t, pModel.PlantSourceClone, m.PlantSource)
	assert.Equal(t, pModel.PlantStageVegetative, m.PlantStage)
	assert.Equal(t, 3, m.PlantGeneration)
	assert.True(t, m.PlantIsQuarantined)
	assert.Equal(t, &mother, m.PlantMotherID)
	assert.Equal(t, &batch, m.PlantBatchID)
}

func TestUpdatePlantRequestApplyToModel(t *testing.T) {
	location := uuid.New()
	m := &pModel.PlantModel{
		PlantStage:        pModel.PlantStageVegetative,
		PlantHealthStatus: pModel.PlantHealthHealthy,
		PlantGeneration:   1,
		PlantLocationID:   &location,
	}

	var r UpdatePlantRequest
	require.NoError(t, json.Unmarshal([]byte(`{"plant_stage":"flowering","plant_location_id":null,"plant_health_status":"pest"}`), &r))
	require.NoError(t, r.Validate())

	r.ApplyToModel(m)
	assert.Equal(t, pModel.PlantStageFlowering, m.PlantStage)
	assert.Equal(t, pModel.PlantHealthPest, m.PlantHealthStatus)
	assert.Nil(t, m.PlantLocationID)
	assert.Equal(t, 1, m.PlantGeneration) // absent, untouched
}

func TestUpdatePlantRequestBatchFieldLeftToController(t *testing.T) {
	batch := uuid.New()
	m := &pModel.PlantModel{PlantBatchID: &batch}

	var r UpdatePlantRequest
	require.NoError(t, json.Unmarshal([]byte(`{"plant_batch_id":null}`), &r))

	r.ApplyToModel(m)
	assert.Equal(t, &batch, m.PlantBatchID)

	v, ok := r.PlantBatchID.Get()
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestUpdatePlantRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"valid", `{"plant_stage":"harvested","plant_sex":"female"}`, false},
		{"stage unknown", `{"plant_stage":"germinating"}`, true},
		{"stage null", `{"plant_stage":null}`, true},
		{"source unknown", `{"plant_source":"cutting"}`, true},
		{"sex unknown value", `{"plant_sex":"other"}`, true},
		{"sex null allowed", `{"plant_sex":null}`, false},
		{"health unknown", `{"plant_health_status":"dying"}`, true},
		{"generation zero", `{"plant_generation":0}`, true},
		{"phenotype too long", `{"plant_phenotype":"` + strings.Repeat("x", 81) + `"}`, true},
		{"empty payload", `{}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r UpdatePlantRequest
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &r))
			err := r.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPlantResponse(t *testing.T) {
	m := &pModel.PlantModel{
		PlantID:           uuid.New(),
		PlantStage:        pModel.PlantStageFlowering,
		PlantHealthStatus: pModel.PlantHealthHealthy,
		PlantGeneration:   2,
	}
	resp := NewPlantResponse(m)
	require.NotNil(t, resp)
	assert.Equal(t, pModel.PlantStageFlowering, resp.PlantStage)
	assert.Equal(t, 2, resp.PlantGeneration)
	assert.Nil(t, resp.Genetic)
	assert.Nil(t, resp.Batch)
	assert.Nil(t, resp.Location)

	assert.Nil(t, NewPlantResponse(nil))
}
