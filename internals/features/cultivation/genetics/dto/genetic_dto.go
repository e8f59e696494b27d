package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	gModel "growlog_backend/internals/features/cultivation/genetics/model"
	helper "growlog_backend/internals/helpers"
)

/* ===================== NESTED STRUCTURES ===================== */

// GrowthCharacteristics is the free-form grow profile stored as jsonb.
type GrowthCharacteristics struct {
	HeightCM   *int    `json:"height_cm,omitempty"`
	YieldGrams *int    `json:"yield_grams,omitempty"`
	Difficulty *string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy moderate hard"`
	Stretch    *string `json:"stretch,omitempty"`
}

// Lineage points at parent genetics plus a generation counter.
type Lineage struct {
	MotherGeneticID *uuid.UUID `json:"mother_genetic_id,omitempty"`
	FatherGeneticID *uuid.UUID `json:"father_genetic_id,omitempty"`
	Generation      *int       `json:"generation,omitempty" validate:"omitempty,min=1"`
}

/* ===================== REQUESTS ===================== */

type CreateGeneticRequest struct {
	GeneticName        string             `json:"genetic_name" validate:"required,min=2,max=120"`
	GeneticType        gModel.GeneticType `json:"genetic_type" validate:"required,oneof=sativa indica hybrid"`
	GeneticBreeder     *string            `json:"genetic_breeder" validate:"omitempty,max=120"`
	GeneticDescription *string            `json:"genetic_description" validate:"omitempty"`

	GeneticFloweringDays *int     `json:"genetic_flowering_days" validate:"omitempty,min=1,max=365"`
	GeneticTHCPotential  *float64 `json:"genetic_thc_potential" validate:"omitempty,min=0,max=100"`
	GeneticCBDPotential  *float64 `json:"genetic_cbd_potential" validate:"omitempty,min=0,max=100"`

	GeneticTerpeneProfile        map[string]float64     `json:"genetic_terpene_profile" validate:"omitempty"`
	GeneticGrowthCharacteristics *GrowthCharacteristics `json:"genetic_growth_characteristics" validate:"omitempty"`
	GeneticLineage               *Lineage               `json:"genetic_lineage" validate:"omitempty"`
}

// ToModel builds the row; slug is assigned by the controller after the
// uniqueness pass, creator comes from the token.
func (r *CreateGeneticRequest) ToModel(createdBy uuid.UUID) *gModel.GeneticModel {
	m := &gModel.GeneticModel{
		GeneticName:          r.GeneticName,
		GeneticType:          r.GeneticType,
		GeneticBreeder:       r.GeneticBreeder,
		GeneticDescription:   r.GeneticDescription,
		GeneticFloweringDays: r.GeneticFloweringDays,
		GeneticCreatedBy:     createdBy,
	}

	if r.GeneticTHCPotential != nil {
		s := helper.DecimalText(*r.GeneticTHCPotential)
		m.GeneticTHCPotential = &s
	}
	if r.GeneticCBDPotential != nil {
		s := helper.DecimalText(*r.GeneticCBDPotential)
		m.GeneticCBDPotential = &s
	}

	m.GeneticTerpeneProfile = terpenesToJSONMap(r.GeneticTerpeneProfile)
	if r.GeneticGrowthCharacteristics != nil {
		m.GeneticGrowthCharacteristics = mustJSON(r.GeneticGrowthCharacteristics)
	}
	if r.GeneticLineage != nil {
		m.GeneticLineage = mustJSON(r.GeneticLineage)
	}
	return m
}

type UpdateGeneticRequest struct {
	GeneticName        helper.Optional[string]             `json:"genetic_name"`
	GeneticType        helper.Optional[gModel.GeneticType] `json:"genetic_type"`
	GeneticBreeder     helper.Optional[string]             `json:"genetic_breeder"`
	GeneticDescription helper.Optional[string]             `json:"genetic_description"`

	GeneticFloweringDays helper.Optional[int]     `json:"genetic_flowering_days"`
	GeneticTHCPotential  helper.Optional[float64] `json:"genetic_thc_potential"`
	GeneticCBDPotential  helper.Optional[float64] `json:"genetic_cbd_potential"`

	GeneticTerpeneProfile        helper.Optional[map[string]float64]    `json:"genetic_terpene_profile"`
	GeneticGrowthCharacteristics helper.Optional[GrowthCharacteristics] `json:"genetic_growth_characteristics"`
	GeneticLineage               helper.Optional[Lineage]               `json:"genetic_lineage"`
}

// ApplyToModel copies only the fields present in the payload onto m and
// reports whether the name changed (the controller then re-derives the
// slug). Present-null clears nullable columns.
func (r *UpdateGeneticRequest) ApplyToModel(m *gModel.GeneticModel) (nameChanged bool) {
	if v, ok := r.GeneticName.Get(); ok && v != nil && *v != m.GeneticName {
		m.GeneticName = *v
		nameChanged = true
	}
	if v, ok := r.GeneticType.Get(); ok && v != nil {
		m.GeneticType = *v
	}
	if v, ok := r.GeneticBreeder.Get(); ok {
		m.GeneticBreeder = v
	}
	if v, ok := r.GeneticDescription.Get(); ok {
		m.GeneticDescription = v
	}
	if v, ok := r.GeneticFloweringDays.Get(); ok {
		m.GeneticFloweringDays = v
	}
	if v, ok := r.GeneticTHCPotential.Get(); ok {
		if v == nil {
			m.GeneticTHCPotential = nil
		} else {
			s := helper.DecimalText(*v)
			m.GeneticTHCPotential = &s
		}
	}
	if v, ok := r.GeneticCBDPotential.Get(); ok {
		if v == nil {
			m.GeneticCBDPotential = nil
		} else {
			s := helper.DecimalText(*v)
			m.GeneticCBDPotential = &s
		}
	}
	if v, ok := r.GeneticTerpeneProfile.Get(); ok {
		if v == nil {
			m.GeneticTerpeneProfile = datatypes.JSONMap{}
		} else {
			m.GeneticTerpeneProfile = terpenesToJSONMap(*v)
		}
	}
	if v, ok := r.GeneticGrowthCharacteristics.Get(); ok {
		if v == nil {
			m.GeneticGrowthCharacteristics = nil
		} else {
			m.GeneticGrowthCharacteristics = mustJSON(v)
		}
	}
	if v, ok := r.GeneticLineage.Get(); ok {
		if v == nil {
			m.GeneticLineage = nil
		} else {
			m.GeneticLineage = mustJSON(v)
		}
	}

	m.GeneticUpdatedAt = time.Now()
	return nameChanged
}

// Validate re-checks the bounded fields that validator tags cannot reach
// inside Optional values.
func (r *UpdateGeneticRequest) Validate() error {
	if v, ok := r.GeneticName.Get(); ok {
		if v == nil || len(*v) < 2 || len(*v) > 120 {
			return errField("genetic_name", "min=2,max=120 and not null")
		}
	}
	if v, ok := r.GeneticType.Get(); ok {
		if v == nil {
			return errField("genetic_type", "not null")
		}
		switch *v {
		case gModel.GeneticTypeSativa, gModel.GeneticTypeIndica, gModel.GeneticTypeHybrid:
		default:
			return errField("genetic_type", "oneof=sativa indica hybrid")
		}
	}
	if v, ok := r.GeneticTHCPotential.Get(); ok && v != nil && (*v < 0 || *v > 100) {
		return errField("genetic_thc_potential", "min=0,max=100")
	}
	if v, ok := r.GeneticCBDPotential.Get(); ok && v != nil && (*v < 0 || *v > 100) {
		return errField("genetic_cbd_potential", "min=0,max=100")
	}
	if v, ok := r.GeneticFloweringDays.Get(); ok && v != nil && (*v < 1 || *v > 365) {
		return errField("genetic_flowering_days", "min=1,max=365")
	}
	return nil
}

/* ===================== RESPONSES ===================== */

type GeneticResponse struct {
	GeneticID   uuid.UUID          `json:"genetic_id"`
	GeneticName string             `json:"genetic_name"`
	GeneticSlug string             `json:"genetic_slug"`
	GeneticType gModel.GeneticType `json:"genetic_type"`

	GeneticBreeder     *string `json:"genetic_breeder,omitempty"`
	GeneticDescription *string `json:"genetic_description,omitempty"`

	GeneticFloweringDays *int     `json:"genetic_flowering_days,omitempty"`
	GeneticTHCPotential  *float64 `json:"genetic_thc_potential,omitempty"`
	GeneticCBDPotential  *float64 `json:"genetic_cbd_potential,omitempty"`

	GeneticTerpeneProfile        datatypes.JSONMap `json:"genetic_terpene_profile"`
	GeneticGrowthCharacteristics datatypes.JSON    `json:"genetic_growth_characteristics,omitempty"`
	GeneticLineage               datatypes.JSON    `json:"genetic_lineage,omitempty"`

	GeneticCreatedBy uuid.UUID       `json:"genetic_created_by"`
	Creator          *CreatorSummary `json:"creator,omitempty"`

	GeneticCreatedAt time.Time `json:"genetic_created_at"`
	GeneticUpdatedAt time.Time `json:"genetic_updated_at"`
}

type CreatorSummary struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"user_name"`
}

// GeneticDetailResponse is the by-slug payload: the row plus related
// counts and JSON-aggregated summaries. The aggregates are never null;
// zero related rows come back as [].
type GeneticDetailResponse struct {
	GeneticResponse
	PlantsCount  int64           `json:"plants_count"`
	BatchesCount int64           `json:"batches_count"`
	Plants       json.RawMessage `json:"plants"`
	Batches      json.RawMessage `json:"batches"`
}

func NewGeneticResponse(m *gModel.GeneticModel) *GeneticResponse {
	if m == nil {
		return nil
	}
	resp := &GeneticResponse{
		GeneticID:   m.GeneticID,
		GeneticName: m.GeneticName,
		GeneticSlug: m.GeneticSlug,
		GeneticType: m.GeneticType,

		GeneticBreeder:     m.GeneticBreeder,
		GeneticDescription: m.GeneticDescription,

		GeneticFloweringDays: m.GeneticFloweringDays,
		GeneticTHCPotential:  helper.DecimalValue(m.GeneticTHCPotential),
		GeneticCBDPotential:  helper.DecimalValue(m.GeneticCBDPotential),

		GeneticTerpeneProfile:        m.GeneticTerpeneProfile,
		GeneticGrowthCharacteristics: m.GeneticGrowthCharacteristics,
		GeneticLineage:               m.GeneticLineage,

		GeneticCreatedBy: m.GeneticCreatedBy,
		GeneticCreatedAt: m.GeneticCreatedAt,
		GeneticUpdatedAt: m.GeneticUpdatedAt,
	}
	if resp.GeneticTerpeneProfile == nil {
		resp.GeneticTerpeneProfile = datatypes.JSONMap{}
	}
	if m.Creator != nil {
		resp.Creator = &CreatorSummary{ID: m.Creator.ID, UserName: m.Creator.UserName}
	}
	return resp
}

/* ===================== INTERNALS ===================== */

func terpenesToJSONMap(in map[string]float64) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for k, v := range in {
		out[k] = v
	}
	return out
}

func mustJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

type fieldError struct {
	field string
	rule  string
}

func (e *fieldError) Error() string { return e.field + ": " + e.rule }

func errField(field, rule string) error { return &fieldError{field: field, rule: rule} }
