package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	userModel "growlog_backend/internals/features/users/user/model"
)

/*
GeneticType (matches genetic_type_enum in the DB):
- "sativa"
- "indica"
- "hybrid"
*/
type GeneticType string

const (
	GeneticTypeSativa GeneticType = "sativa"
	GeneticTypeIndica GeneticType = "indica"
	GeneticTypeHybrid GeneticType = "hybrid"
)

// Keep enum values lower-case on scan/save regardless of source casing.
func (t *GeneticType) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*t = GeneticType(strings.ToLower(strings.TrimSpace(v)))
	case []byte:
		*t = GeneticType(strings.ToLower(strings.TrimSpace(string(v))))
	case nil:
		*t = ""
	default:
		*t = GeneticType(strings.ToLower(strings.TrimSpace(v.(string))))
	}
	return nil
}
func (t GeneticType) Value() (driver.Value, error) {
	return strings.ToLower(strings.TrimSpace(string(t))), nil
}

type GeneticModel struct {
	// PK
	GeneticID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:genetic_id" json:"genetic_id"`

	// Identity
	GeneticName string      `gorm:"type:varchar(120);not null;column:genetic_name" json:"genetic_name"`
	GeneticSlug string      `gorm:"type:varchar(160);uniqueIndex;not null;column:genetic_slug" json:"genetic_slug"`
	GeneticType GeneticType `gorm:"type:genetic_type_enum;not null;column:genetic_type" json:"genetic_type"`

	// Provenance & description
	GeneticBreeder     *string `gorm:"type:varchar(120);column:genetic_breeder" json:"genetic_breeder,omitempty"`
	GeneticDescription *string `gorm:"type:text;column:genetic_description" json:"genetic_description,omitempty"`

	// Grow profile
	GeneticFloweringDays *int `gorm:"column:genetic_flowering_days" json:"genetic_flowering_days,omitempty"`

	// Potency: numeric(5,2), carried as exact decimal text so 12.5 stays 12.5
	GeneticTHCPotential *string `gorm:"type:numeric(5,2);column:genetic_thc_potential" json:"genetic_thc_potential,omitempty"`
	GeneticCBDPotential *string `gorm:"type:numeric(5,2);column:genetic_cbd_potential" json:"genetic_cbd_potential,omitempty"`

	// Structured profiles
	GeneticTerpeneProfile        datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}';column:genetic_terpene_profile" json:"genetic_terpene_profile"`
	GeneticGrowthCharacteristics datatypes.JSON    `gorm:"type:jsonb;column:genetic_growth_characteristics" json:"genetic_growth_characteristics,omitempty"`
	GeneticLineage               datatypes.JSON    `gorm:"type:jsonb;column:genetic_lineage" json:"genetic_lineage,omitempty"`

	// Attribution
	GeneticCreatedBy uuid.UUID            `gorm:"type:uuid;not null;column:genetic_created_by" json:"genetic_created_by"`
	Creator          *userModel.UserModel `gorm:"foreignKey:GeneticCreatedBy;references:ID" json:"creator,omitempty"`

	// Audit
	GeneticCreatedAt time.Time `gorm:"column:genetic_created_at;autoCreateTime" json:"genetic_created_at"`
	GeneticUpdatedAt time.Time `gorm:"column:genetic_updated_at;autoUpdateTime" json:"genetic_updated_at"`
}

func (GeneticModel) TableName() string { return "genetics" }
