package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"

	gModel "growlog_backend/internals/features/cultivation/genetics/model"
	userModel "growlog_backend/internals/features/users/user/model"
)

/*
BatchStatus (matches batch_status_enum in the DB):
- "active"
- "completed"
- "cancelled"
*/
type BatchStatus string

const (
	BatchStatusActive    BatchStatus = "active"
	BatchStatusCompleted BatchStatus = "completed"
	BatchStatusCancelled BatchStatus = "cancelled"
)

func (s *BatchStatus) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*s = BatchStatus(strings.ToLower(strings.TrimSpace(v)))
	case []byte:
		*s = BatchStatus(strings.ToLower(strings.TrimSpace(string(v))))
	case nil:
		*s = ""
	default:
		*s = BatchStatus(strings.ToLower(strings.TrimSpace(v.(string))))
	}
	return nil
}
func (s BatchStatus) Value() (driver.Value, error) {
	return strings.ToLower(strings.TrimSpace(string(s))), nil
}

// BatchModel is a production run of plants sharing one strain and timeline.
// batch_plant_count is authoritative and maintained by plant mutations
// inside their transactions; batch creation always starts it at zero.
type BatchModel struct {
	// PK
	BatchID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:batch_id" json:"batch_id"`

	BatchName      string               `gorm:"type:varchar(120);not null;column:batch_name" json:"batch_name"`
	BatchGeneticID uuid.UUID            `gorm:"type:uuid;not null;index;column:batch_genetic_id" json:"batch_genetic_id"`
	Genetic        *gModel.GeneticModel `gorm:"foreignKey:BatchGeneticID;references:GeneticID" json:"genetic,omitempty"`

	// Timeline
	BatchStartDate time.Time  `gorm:"type:date;not null;column:batch_start_date" json:"batch_start_date"`
	BatchEndDate   *time.Time `gorm:"type:date;column:batch_end_date" json:"batch_end_date,omitempty"`

	BatchStatus     BatchStatus `gorm:"type:batch_status_enum;not null;default:'active';column:batch_status" json:"batch_status"`
	BatchPlantCount int         `gorm:"not null;default:0;column:batch_plant_count" json:"batch_plant_count"`
	BatchNotes      *string     `gorm:"type:text;column:batch_notes" json:"batch_notes,omitempty"`

	// Attribution
	BatchOwnerID uuid.UUID            `gorm:"type:uuid;not null;column:batch_owner_id" json:"batch_owner_id"`
	Owner        *userModel.UserModel `gorm:"foreignKey:BatchOwnerID;references:ID" json:"owner,omitempty"`

	// Audit
	BatchCreatedAt time.Time `gorm:"column:batch_created_at;autoCreateTime" json:"batch_created_at"`
	BatchUpdatedAt time.Time `gorm:"column:batch_updated_at;autoUpdateTime" json:"batch_updated_at"`
}

func (BatchModel) TableName() string { return "batches" }
