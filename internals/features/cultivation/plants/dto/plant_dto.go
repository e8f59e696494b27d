package dto

import (
	"time"

	"github.com/google/uuid"

	bDTO "growlog_backend/internals/features/cultivation/batches/dto"
	gDTO "growlog_backend/internals/features/cultivation/genetics/dto"
	lDTO "growlog_backend/internals/features/cultivation/locations/dto"
	pModel "growlog_backend/internals/features/cultivation/plants/model"
	helper "growlog_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

type CreatePlantRequest struct {
	PlantGeneticID  *uuid.UUID `json:"plant_genetic_id" validate:"omitempty"`
	PlantBatchID    *uuid.UUID `json:"plant_batch_id" validate:"omitempty"`
	PlantLocationID *uuid.UUID `json:"plant_location_id" validate:"omitempty"`

	PlantSource *pModel.PlantSource `json:"plant_source" validate:"omitempty,oneof=seed clone mother tissue_culture"`
	PlantStage  *pModel.PlantStage  `json:"plant_stage" validate:"omitempty,oneof=seedling vegetative flowering drying curing harvested destroyed"`

	PlantPlantedAt   *time.Time `json:"plant_planted_at" validate:"omitempty"`
	PlantHarvestedAt *time.Time `json:"plant_harvested_at" validate:"omitempty"`

	PlantMotherID   *uuid.UUID `json:"plant_mother_id" validate:"omitempty"`
	PlantGeneration *int       `json:"plant_generation" validate:"omitempty,min=1"`

	PlantSex           *pModel.PlantSex `json:"plant_sex" validate:"omitempty,oneof=male female hermaphrodite unknown"`
	PlantPhenotype     *string          `json:"plant_phenotype" validate:"omitempty,max=80"`
	PlantIsQuarantined *bool            `json:"plant_is_quarantined" validate:"omitempty"`
}

func (r *CreatePlantRequest) ToModel(createdBy uuid.UUID) *pModel.PlantModel {
	m := &pModel.PlantModel{
		PlantGeneticID:  r.PlantGeneticID,
		PlantBatchID:    r.PlantBatchID,
		PlantLocationID: r.PlantLocationID,

		PlantSource: pModel.PlantSourceSeed,
		PlantStage:  pModel.PlantStageSeedling,

		PlantPlantedAt:   r.PlantPlantedAt,
		PlantHarvestedAt: r.PlantHarvestedAt,

		PlantMotherID:   r.PlantMotherID,
		PlantGeneration: 1,

		PlantSex:          r.PlantSex,
		PlantPhenotype:    r.PlantPhenotype,
		PlantHealthStatus: pModel.PlantHealthHealthy,

		PlantCreatedBy: createdBy,
	}
	if r.PlantSource != nil {
		m.PlantSource = *r.PlantSource
	}
	if r.PlantStage != nil {
		m.PlantStage = *r.PlantStage
	}
	if r.PlantGeneration != nil {
		m.PlantGeneration = *r.PlantGeneration
	}
	if r.PlantIsQuarantined != nil {
		m.PlantIsQuarantined = *r.PlantIsQuarantined
	}
	return m
}

type UpdatePlantRequest struct {
	PlantGeneticID  helper.Optional[uuid.UUID] `json:"plant_genetic_id"`
	PlantBatchID    helper.Optional[uuid.UUID] `json:"plant_batch_id"`
	PlantLocationID helper.Optional[uuid.UUID] `json:"plant_location_id"`

	PlantSource helper.Optional[pModel.PlantSource] `json:"plant_source"`
	PlantStage  helper.Optional[pModel.PlantStage]  `json:"plant_stage"`

	PlantPlantedAt   helper.Optional[time.Time] `json:"plant_planted_at"`
	PlantHarvestedAt helper.Optional[time.Time] `json:"plant_harvested_at"`

	PlantMotherID   helper.Optional[uuid.UUID] `json:"plant_mother_id"`
	PlantGeneration helper.Optional[int]       `json:"plant_generation"`

	PlantSex           helper.Optional[pModel.PlantSex]          `json:"plant_sex"`
	PlantPhenotype     helper.Optional[string]                   `json:"plant_phenotype"`
	PlantHealthStatus  helper.Optional[pModel.PlantHealthStatus] `json:"plant_health_status"`
	PlantIsQuarantined helper.Optional[bool]                     `json:"plant_is_quarantined"`
	PlantDestroyReason helper.Optional[string]                   `json:"plant_destroy_reason"`
}

// ApplyToModel copies present fields onto m. Batch membership is handled by
// the controller because it has to move the plant counts in the same
// transaction.
func (r *UpdatePlantRequest) ApplyToModel(m *pModel.PlantModel) {
	if v, ok := r.PlantGeneticID.Get(); ok {
		m.PlantGeneticID = v
	}
	if v, ok := r.PlantLocationID.Get(); ok {
		m.PlantLocationID = v
	}
	if v, ok := r.PlantSource.Get(); ok && v != nil {
		m.PlantSource = *v
	}
	if v, ok := r.PlantStage.Get(); ok && v != nil {
		m.PlantStage = *v
	}
	if v, ok := r.PlantPlantedAt.Get(); ok {
		m.PlantPlantedAt = v
	}
	if v, ok := r.PlantHarvestedAt.Get(); ok {
		m.PlantHarvestedAt = v
	}
	if v, ok := r.PlantMotherID.Get(); ok {
		m.PlantMotherID = v
	}
	if v, ok := r.PlantGeneration.Get(); ok && v != nil {
		m.PlantGeneration = *v
	}
	if v, ok := r.PlantSex.Get(); ok {
		m.PlantSex = v
	}
	if v, ok := r.PlantPhenotype.Get(); ok {
		m.PlantPhenotype = v
	}
	if v, ok := r.PlantHealthStatus.Get(); ok && v != nil {
		m.PlantHealthStatus = *v
	}
	if v, ok := r.PlantIsQuarantined.Get(); ok && v != nil {
		m.PlantIsQuarantined = *v
	}
	if v, ok := r.PlantDestroyReason.Get(); ok {
		m.PlantDestroyReason = v
	}
	m.PlantUpdatedAt = time.Now()
}

func (r *UpdatePlantRequest) Validate() error {
	if v, ok := r.PlantSource.Get(); ok {
		if v == nil {
			return errField("plant_source", "not null")
		}
		switch *v {
		case pModel.PlantSourceSeed, pModel.PlantSourceClone, pModel.PlantSourceMother, pModel.PlantSourceTissueCulture:
		default:
			return errField("plant_source", "oneof=seed clone mother tissue_culture")
		}
	}
	if v, ok := r.PlantStage.Get(); ok {
		if v == nil {
			return errField("plant_stage", "not null")
		}
		switch *v {
		case pModel.PlantStageSeedling, pModel.PlantStageVegetative, pModel.PlantStageFlowering,
			pModel.PlantStageDrying, pModel.PlantStageCuring, pModel.PlantStageHarvested, pModel.PlantStageDestroyed:
		default:
			return errField("plant_stage", "invalid stage")
		}
	}
	if v, ok := r.PlantSex.Get(); ok && v != nil {
		switch *v {
		case pModel.PlantSexMale, pModel.PlantSexFemale, pModel.PlantSexHermaphrodite, pModel.PlantSexUnknown:
		default:
			return errField("plant_sex", "oneof=male female hermaphrodite unknown")
		}
	}
	if v, ok := r.PlantHealthStatus.Get(); ok {
		if v == nil {
			return errField("plant_health_status", "not null")
		}
		switch *v {
		case pModel.PlantHealthHealthy, pModel.PlantHealthSick, pModel.PlantHealthPest, pModel.PlantHealthRecovering:
		default:
			return errField("plant_health_status", "oneof=healthy sick pest recovering")
		}
	}
	if v, ok := r.PlantGeneration.Get(); ok && (v == nil || *v < 1) {
		return errField("plant_generation", "min=1 and not null")
	}
	if v, ok := r.PlantPhenotype.Get(); ok && v != nil && len(*v) > 80 {
		return errField("plant_phenotype", "max=80")
	}
	return nil
}

/* ===================== RESPONSES ===================== */

type PlantResponse struct {
	PlantID uuid.UUID `json:"plant_id"`

	PlantGeneticID  *uuid.UUID             `json:"plant_genetic_id,omitempty"`
	Genetic         *gDTO.GeneticResponse  `json:"genetic,omitempty"`
	PlantBatchID    *uuid.UUID             `json:"plant_batch_id,omitempty"`
	Batch           *bDTO.BatchResponse    `json:"batch,omitempty"`
	PlantLocationID *uuid.UUID             `json:"plant_location_id,omitempty"`
	Location        *lDTO.LocationResponse `json:"location,omitempty"`

	PlantSource pModel.PlantSource `json:"plant_source"`
	PlantStage  pModel.PlantStage  `json:"plant_stage"`

	PlantPlantedAt   *time.Time `json:"plant_planted_at,omitempty"`
	PlantHarvestedAt *time.Time `json:"plant_harvested_at,omitempty"`

	PlantMotherID   *uuid.UUID `json:"plant_mother_id,omitempty"`
	PlantGeneration int        `json:"plant_generation"`

	PlantSex           *pModel.PlantSex         `json:"plant_sex,omitempty"`
	PlantPhenotype     *string                  `json:"plant_phenotype,omitempty"`
	PlantHealthStatus  pModel.PlantHealthStatus `json:"plant_health_status"`
	PlantIsQuarantined bool                     `json:"plant_is_quarantined"`
	PlantDestroyReason *string                  `json:"plant_destroy_reason,omitempty"`

	PlantCreatedBy uuid.UUID `json:"plant_created_by"`

	PlantCreatedAt time.Time `json:"plant_created_at"`
	PlantUpdatedAt time.Time `json:"plant_updated_at"`
}

func NewPlantResponse(m *pModel.PlantModel) *PlantResponse {
	if m == nil {
		return nil
	}
	return &PlantResponse{
		PlantID: m.PlantID,

		PlantGeneticID:  m.PlantGeneticID,
		Genetic:         gDTO.NewGeneticResponse(m.Genetic),
		PlantBatchID:    m.PlantBatchID,
		Batch:           bDTO.NewBatchResponse(m.Batch),
		PlantLocationID: m.PlantLocationID,
		Location:        lDTO.NewLocationResponse(m.Location),

		PlantSource: m.PlantSource,
		PlantStage:  m.PlantStage,

		PlantPlantedAt:   m.PlantPlantedAt,
		PlantHarvestedAt: m.PlantHarvestedAt,

		PlantMotherID:   m.PlantMotherID,
		PlantGeneration: m.PlantGeneration,

		PlantSex:           m.PlantSex,
		PlantPhenotype:     m.PlantPhenotype,
		PlantHealthStatus:  m.PlantHealthStatus,
		PlantIsQuarantined: m.PlantIsQuarantined,
		PlantDestroyReason: m.PlantDestroyReason,

		PlantCreatedBy: m.PlantCreatedBy,

		PlantCreatedAt: m.PlantCreatedAt,
		PlantUpdatedAt: m.PlantUpdatedAt,
	}
}

/* ===================== INTERNALS ===================== */

type fieldError struct {
	field string
	rule  string
}

func (e *fieldError) Error() string { return e.field + ": " + e.rule }

func errField(field, rule string) error { return &fieldError{field: field, rule: rule} }
