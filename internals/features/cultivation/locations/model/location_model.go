package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"

	userModel "growlog_backend/internals/features/users/user/model"
)

/*
LocationType (matches location_type_enum in the DB):
- "room"
- "tent"
- "greenhouse"
- "outdoor"
*/
type LocationType string

const (
	LocationTypeRoom       LocationType = "room"
	LocationTypeTent       LocationType = "tent"
	LocationTypeGreenhouse LocationType = "greenhouse"
	LocationTypeOutdoor    LocationType = "outdoor"
)

func (t *LocationType) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*t = LocationType(strings.ToLower(strings.TrimSpace(v)))
	case []byte:
		*t = LocationType(strings.ToLower(strings.TrimSpace(string(v))))
	case nil:
		*t = ""
	default:
		*t = LocationType(strings.ToLower(strings.TrimSpace(v.(string))))
	}
	return nil
}
func (t LocationType) Value() (driver.Value, error) {
	return strings.ToLower(strings.TrimSpace(string(t))), nil
}

type LocationModel struct {
	// PK
	LocationID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:location_id" json:"location_id"`

	LocationName     string       `gorm:"type:varchar(120);not null;column:location_name" json:"location_name"`
	LocationType     LocationType `gorm:"type:location_type_enum;not null;default:'room';column:location_type" json:"location_type"`
	LocationCapacity *int         `gorm:"column:location_capacity" json:"location_capacity,omitempty"`
	LocationNotes    *string      `gorm:"type:text;column:location_notes" json:"location_notes,omitempty"`

	// Attribution
	LocationOwnerID uuid.UUID            `gorm:"type:uuid;not null;column:location_owner_id" json:"location_owner_id"`
	Owner           *userModel.UserModel `gorm:"foreignKey:LocationOwnerID;references:ID" json:"owner,omitempty"`

	// Audit
	LocationCreatedAt time.Time `gorm:"column:location_created_at;autoCreateTime" json:"location_created_at"`
	LocationUpdatedAt time.Time `gorm:"column:location_updated_at;autoUpdateTime" json:"location_updated_at"`
}

func (LocationModel) TableName() string { return "locations" }
