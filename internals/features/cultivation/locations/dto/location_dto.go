package dto

import (
	"time"

	"github.com/google/uuid"

	lModel "growlog_backend/internals/features/cultivation/locations/model"
	helper "growlog_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

type CreateLocationRequest struct {
	LocationName     string               `json:"location_name" validate:"required,min=2,max=120"`
	LocationType     *lModel.LocationType `json:"location_type" validate:"omitempty,oneof=room tent greenhouse outdoor"`
	LocationCapacity *int                 `json:"location_capacity" validate:"omitempty,min=1"`
	LocationNotes    *string              `json:"location_notes" validate:"omitempty"`
}

func (r *CreateLocationRequest) ToModel(ownerID uuid.UUID) *lModel.LocationModel {
	m := &lModel.LocationModel{
		LocationName:     r.LocationName,
		LocationType:     lModel.LocationTypeRoom,
		LocationCapacity: r.LocationCapacity,
		LocationNotes:    r.LocationNotes,
		LocationOwnerID:  ownerID,
	}
	if r.LocationType != nil {
		m.LocationType = *r.LocationType
	}
	return m
}

type UpdateLocationRequest struct {
	LocationName     helper.Optional[string]              `json:"location_name"`
	LocationType     helper.Optional[lModel.LocationType] `json:"location_type"`
	LocationCapacity helper.Optional[int]                 `json:"location_capacity"`
	LocationNotes    helper.Optional[string]              `json:"location_notes"`
}

func (r *UpdateLocationRequest) ApplyToModel(m *lModel.LocationModel) {
	if v, ok := r.LocationName.Get(); ok && v != nil {
		m.LocationName = *v
	}
	if v, ok := r.LocationType.Get(); ok && v != nil {
		m.LocationType = *v
	}
	if v, ok := r.LocationCapacity.Get(); ok {
		m.LocationCapacity = v
	}
	if v, ok := r.LocationNotes.Get(); ok {
		m.LocationNotes = v
	}
	m.LocationUpdatedAt = time.Now()
}

func (r *UpdateLocationRequest) Validate() error {
	if v, ok := r.LocationName.Get(); ok {
		if v == nil || len(*v) < 2 || len(*v) > 120 {
			return errField("location_name", "min=2,max=120 and not null")
		}
	}
	if v, ok := r.LocationType.Get(); ok {
		if v == nil {
			return errField("location_type", "not null")
		}
		switch *v {
		case lModel.LocationTypeRoom, lModel.LocationTypeTent, lModel.LocationTypeGreenhouse, lModel.LocationTypeOutdoor:
		default:
			return errField("location_type", "oneof=room tent greenhouse outdoor")
		}
	}
	if v, ok := r.LocationCapacity.Get(); ok && v != nil && *v < 1 {
		return errField("location_capacity", "min=1")
	}
	return nil
}

/* ===================== RESPONSES ===================== */

type LocationResponse struct {
	LocationID       uuid.UUID           `json:"location_id"`
	LocationName     string              `json:"location_name"`
	LocationType     lModel.LocationType `json:"location_type"`
	LocationCapacity *int                `json:"location_capacity,omitempty"`
	LocationNotes    *string             `json:"location_notes,omitempty"`

	LocationOwnerID uuid.UUID `json:"location_owner_id"`

	LocationCreatedAt time.Time `json:"location_created_at"`
	LocationUpdatedAt time.Time `json:"location_updated_at"`
}

func NewLocationResponse(m *lModel.LocationModel) *LocationResponse {
	if m == nil {
		return nil
	}
	return &LocationResponse{
		LocationID:       m.LocationID,
		LocationName:     m.LocationName,
		LocationType:     m.LocationType,
		LocationCapacity: m.LocationCapacity,
		LocationNotes:    m.LocationNotes,

		LocationOwnerID: m.LocationOwnerID,

		LocationCreatedAt: m.LocationCreatedAt,
		LocationUpdatedAt: m.LocationUpdatedAt,
	}
}

/* ===================== INTERNALS ===================== */

type fieldError struct {
	field string
	rule  string
}

func (e *fieldError) Error() string { return e.field + ": " + e.rule }

func errField(field, rule string) error { return &fieldError{field: field, rule: rule} }
