package dto

import (
	"time"

	"github.com/google/uuid"

	bModel "growlog_backend/internals/features/cultivation/batches/model"
	gDTO "growlog_backend/internals/features/cultivation/genetics/dto"
	helper "growlog_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

type CreateBatchRequest struct {
	BatchName      string    `json:"batch_name" validate:"required,min=2,max=120"`
	BatchGeneticID uuid.UUID `json:"batch_genetic_id" validate:"required"`

	BatchStartDate time.Time  `json:"batch_start_date" validate:"required"`
	BatchEndDate   *time.Time `json:"batch_end_date" validate:"omitempty"`

	BatchStatus *bModel.BatchStatus `json:"batch_status" validate:"omitempty,oneof=active completed cancelled"`
	BatchNotes  *string             `json:"batch_notes" validate:"omitempty"`
}

// ToModel builds the row. The plant count always starts at zero; plant
// mutations own it from here on.
func (r *CreateBatchRequest) ToModel(ownerID uuid.UUID) *bModel.BatchModel {
	m := &bModel.BatchModel{
		BatchName:      r.BatchName,
		BatchGeneticID: r.BatchGeneticID,
		BatchStartDate: r.BatchStartDate,
		BatchEndDate:   r.BatchEndDate,
		BatchStatus:    bModel.BatchStatusActive,
		BatchNotes:     r.BatchNotes,
		BatchOwnerID:   ownerID,
	}
	if r.BatchStatus != nil {
		m.BatchStatus = *r.BatchStatus
	}
	return m
}

type UpdateBatchRequest struct {
	BatchName      helper.Optional[string]             `json:"batch_name"`
	BatchStartDate helper.Optional[time.Time]          `json:"batch_start_date"`
	BatchEndDate   helper.Optional[time.Time]          `json:"batch_end_date"`
	BatchStatus    helper.Optional[bModel.BatchStatus] `json:"batch_status"`
	BatchNotes     helper.Optional[string]             `json:"batch_notes"`
}

func (r *UpdateBatchRequest) ApplyToModel(m *bModel.BatchModel) {
	if v, ok := r.BatchName.Get(); ok && v != nil {
		m.BatchName = *v
	}
	if v, ok := r.BatchStartDate.Get(); ok && v != nil {
		m.BatchStartDate = *v
	}
	if v, ok := r.BatchEndDate.Get(); ok {
		m.BatchEndDate = v
	}
	if v, ok := r.BatchStatus.Get(); ok && v != nil {
		m.BatchStatus = *v
	}
	if v, ok := r.BatchNotes.Get(); ok {
		m.BatchNotes = v
	}
	m.BatchUpdatedAt = time.Now()
}

func (r *UpdateBatchRequest) Validate() error {
	if v, ok := r.BatchName.Get(); ok {
		if v == nil || len(*v) < 2 || len(*v) > 120 {
			return errField("batch_name", "min=2,max=120 and not null")
		}
	}
	if v, ok := r.BatchStatus.Get(); ok {
		if v == nil {
			return errField("batch_status", "not null")
		}
		switch *v {
		case bModel.BatchStatusActive, bModel.BatchStatusCompleted, bModel.BatchStatusCancelled:
		default:
			return errField("batch_status", "oneof=active completed cancelled")
		}
	}
	if v, ok := r.BatchStartDate.Get(); ok && v == nil {
		return errField("batch_start_date", "not null")
	}
	return nil
}

/* ===================== RESPONSES ===================== */

type BatchResponse struct {
	BatchID        uuid.UUID             `json:"batch_id"`
	BatchName      string                `json:"batch_name"`
	BatchGeneticID uuid.UUID             `json:"batch_genetic_id"`
	Genetic        *gDTO.GeneticResponse `json:"genetic,omitempty"`

	BatchStartDate time.Time  `json:"batch_start_date"`
	BatchEndDate   *time.Time `json:"batch_end_date,omitempty"`

	BatchStatus     bModel.BatchStatus `json:"batch_status"`
	BatchPlantCount int                `json:"batch_plant_count"`
	BatchNotes      *string            `json:"batch_notes,omitempty"`

	BatchOwnerID uuid.UUID            `json:"batch_owner_id"`
	Owner        *gDTO.CreatorSummary `json:"owner,omitempty"`

	BatchCreatedAt time.Time `json:"batch_created_at"`
	BatchUpdatedAt time.Time `json:"batch_updated_at"`
}

func NewBatchResponse(m *bModel.BatchModel) *BatchResponse {
	if m == nil {
		return nil
	}
	resp := &BatchResponse{
		BatchID:        m.BatchID,
		BatchName:      m.BatchName,
		BatchGeneticID: m.BatchGeneticID,
		Genetic:        gDTO.NewGeneticResponse(m.Genetic),

		BatchStartDate: m.BatchStartDate,
		BatchEndDate:   m.BatchEndDate,

		BatchStatus:     m.BatchStatus,
		BatchPlantCount: m.BatchPlantCount,
		BatchNotes:      m.BatchNotes,

		BatchOwnerID:   m.BatchOwnerID,
		BatchCreatedAt: m.BatchCreatedAt,
		BatchUpdatedAt: m.BatchUpdatedAt,
	}
	if m.Owner != nil {
		resp.Owner = &gDTO.CreatorSummary{ID: m.Owner.ID, UserName: m.Owner.UserName}
	}
	return resp
}

/* ===================== INTERNALS ===================== */

type fieldError struct {
	field string
	rule  string
}

func (e *fieldError) Error() string { return e.field + ": " + e.rule }

func errField(field, rule string) error { return &fieldError{field: field, rule: rule} }
