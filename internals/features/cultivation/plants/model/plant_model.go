package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"

	bModel "growlog_backend/internals/features/cultivation/batches/model"
	gModel "growlog_backend/internals/features/cultivation/genetics/model"
	lModel "growlog_backend/internals/features/cultivation/locations/model"
	userModel "growlog_backend/internals/features/users/user/model"
)

func lowered(value any) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case []byte:
		return strings.ToLower(strings.TrimSpace(string(v)))
	case nil:
		return ""
	default:
		return strings.ToLower(strings.TrimSpace(v.(string)))
	}
}

/*
PlantSource (plant_source_enum):
- "seed" | "clone" | "mother" | "tissue_culture"
*/
type PlantSource string

const (
	PlantSourceSeed          PlantSource = "seed"
	PlantSourceClone         PlantSource = "clone"
	PlantSourceMother        PlantSource = "mother"
	PlantSourceTissueCulture PlantSource = "tissue_culture"
)

func (s *PlantSource) Scan(value any) error { *s = PlantSource(lowered(value)); return nil }
func (s PlantSource) Value() (driver.Value, error) {
	return strings.ToLower(strings.TrimSpace(string(s))), nil
}

/*
PlantStage (plant_stage_enum):
- "seedling" | "vegetative" | "flowering" | "drying" | "curing" | "harvested" | "destroyed"
*/
type PlantStage string

const (
	PlantStageSeedling   PlantStage = "seedling"
	PlantStageVegetative PlantStage = "vegetative"
	PlantStageFlowering  PlantStage = "flowering"
	PlantStageDrying     PlantStage = "drying"
	PlantStageCuring     PlantStage = "curing"
	PlantStageHarvested  PlantStage = "harvested"
	PlantStageDestroyed  PlantStage = "destroyed"
)

func (s *PlantStage) Scan(value any) error { *s = PlantStage(lowered(value)); return nil }
func (s PlantStage) Value() (driver.Value, error) {
	return strings.ToLower(strings.TrimSpace(string(s))), nil
}

/*
PlantSex (plant_sex_enum, nullable):
- "male" | "female" | "hermaphrodite" | "unknown"
*/
type PlantSex string

const (
	PlantSexMale          PlantSex = "male"
	PlantSexFemale        PlantSex = "female"
	PlantSexHermaphrodite PlantSex = "hermaphrodite"
	PlantSexUnknown       PlantSex = "unknown"
)

func (s *PlantSex) Scan(value any) error { *s = PlantSex(lowered(value)); return nil }
func (s PlantSex) Value() (driver.Value, error) {
	return strings.ToLower(strings.TrimSpace(string(s))), nil
}

/*
PlantHealthStatus (plant_health_enum):
- "healthy" | "sick" | "pest" | "recovering"
*/
type PlantHealthStatus string

const (
	PlantHealthHealthy    PlantHealthStatus = "healthy"
	PlantHealthSick       PlantHealthStatus = "sick"
	PlantHealthPest       PlantHealthStatus = "pest"
	PlantHealthRecovering PlantHealthStatus = "recovering"
)

func (s *PlantHealthStatus) Scan(value any) error { *s = PlantHealthStatus(lowered(value)); return nil }
func (s PlantHealthStatus) Value() (driver.Value, error) {
	return strings.ToLower(strings.TrimSpace(string(s))), nil
}

// PlantModel is one tracked specimen. plant_mother_id forms the clone
// lineage graph (acyclic in practice, not structurally enforced).
type PlantModel struct {
	// PK
	PlantID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:plant_id" json:"plant_id"`

	// References
	PlantGeneticID  *uuid.UUID            `gorm:"type:uuid;index;column:plant_genetic_id" json:"plant_genetic_id,omitempty"`
	Genetic         *gModel.GeneticModel  `gorm:"foreignKey:PlantGeneticID;references:GeneticID" json:"genetic,omitempty"`
	PlantBatchID    *uuid.UUID            `gorm:"type:uuid;index;column:plant_batch_id" json:"plant_batch_id,omitempty"`
	Batch           *bModel.BatchModel    `gorm:"foreignKey:PlantBatchID;references:BatchID" json:"batch,omitempty"`
	PlantLocationID *uuid.UUID            `gorm:"type:uuid;index;column:plant_location_id" json:"plant_location_id,omitempty"`
	Location        *lModel.LocationModel `gorm:"foreignKey:PlantLocationID;references:LocationID" json:"location,omitempty"`

	// Origin & lifecycle
	PlantSource PlantSource `gorm:"type:plant_source_enum;not null;default:'seed';column:plant_source" json:"plant_source"`
	PlantStage  PlantStage  `gorm:"type:plant_stage_enum;not null;default:'seedling';column:plant_stage" json:"plant_stage"`

	PlantPlantedAt   *time.Time `gorm:"type:date;column:plant_planted_at" json:"plant_planted_at,omitempty"`
	PlantHarvestedAt *time.Time `gorm:"type:date;column:plant_harvested_at" json:"plant_harvested_at,omitempty"`

	// Lineage
	PlantMotherID   *uuid.UUID `gorm:"type:uuid;index;column:plant_mother_id" json:"plant_mother_id,omitempty"`
	PlantGeneration int        `gorm:"not null;default:1;column:plant_generation" json:"plant_generation"`

	// Phenotype & health
	PlantSex           *PlantSex         `gorm:"type:plant_sex_enum;column:plant_sex" json:"plant_sex,omitempty"`
	PlantPhenotype     *string           `gorm:"type:varchar(80);column:plant_phenotype" json:"plant_phenotype,omitempty"`
	PlantHealthStatus  PlantHealthStatus `gorm:"type:plant_health_enum;not null;default:'healthy';column:plant_health_status" json:"plant_health_status"`
	PlantIsQuarantined bool              `gorm:"not null;default:false;column:plant_is_quarantined" json:"plant_is_quarantined"`
	PlantDestroyReason *string           `gorm:"type:text;column:plant_destroy_reason" json:"plant_destroy_reason,omitempty"`

	// Attribution
	PlantCreatedBy uuid.UUID            `gorm:"type:uuid;not null;column:plant_created_by" json:"plant_created_by"`
	Creator        *userModel.UserModel `gorm:"foreignKey:PlantCreatedBy;references:ID" json:"creator,omitempty"`

	// Audit
	PlantCreatedAt time.Time `gorm:"column:plant_created_at;autoCreateTime" json:"plant_created_at"`
	PlantUpdatedAt time.Time `gorm:"column:plant_updated_at;autoUpdateTime" json:"plant_updated_at"`
}

func (PlantModel) TableName() string { return "plants" }
