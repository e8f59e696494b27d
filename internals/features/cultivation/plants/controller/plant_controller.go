package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bModel "growlog_backend/internals/features/cultivation/batches/model"
	gModel "growlog_backend/internals/features/cultivation/genetics/model"
	lModel "growlog_backend/internals/features/cultivation/locations/model"
	pDTO "growlog_backend/internals/features/cultivation/plants/dto"
	pModel "growlog_backend/internals/features/cultivation/plants/model"
	helper "growlog_backend/internals/helpers"
	helperAuth "growlog_backend/internals/helpers/auth"
)

type PlantController struct {
	DB *gorm.DB
}

func NewPlantController(db *gorm.DB) *PlantController {
	return &PlantController{DB: db}
}

/* ===================== HANDLERS ===================== */

// POST /api/u/plants
//
// Reference checks, the insert and the batch count increment share one
// transaction so the count cannot drift from actual membership.
func (h *PlantController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req pDTO.CreatePlantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(userID)
	if m.PlantStage == pModel.PlantStageDestroyed {
		return fiber.NewError(fiber.StatusBadRequest, "A plant cannot be created already destroyed")
	}

	txErr := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, m.PlantGeneticID, m.PlantBatchID, m.PlantMotherID, m.PlantLocationID); err != nil {
			return err
		}

		if err := tx.Create(m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create plant")
		}

		if m.PlantBatchID != nil {
			if err := adjustBatchCount(tx, *m.PlantBatchID, +1); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return asFiberError(txErr, "Failed to create plant")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Plant created", pDTO.NewPlantResponse(m))
}

// GET /api/u/plants
func (h *PlantController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := helper.ResolvePaging(c, 100, 0)

	dbq := h.DB.WithContext(ctx).Model(&pModel.PlantModel{})

	if v := strings.TrimSpace(c.Query("stage")); v != "" {
		dbq = dbq.Where("plant_stage = ?", strings.ToLower(v))
	}
	if v := strings.TrimSpace(c.Query("batch_id")); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			dbq = dbq.Where("plant_batch_id = ?", id)
		}
	}
	if v := strings.TrimSpace(c.Query("genetic_id")); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			dbq = dbq.Where("plant_genetic_id = ?", id)
		}
	}
	if v := strings.TrimSpace(c.Query("location_id")); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			dbq = dbq.Where("plant_location_id = ?", id)
		}
	}
	if v := c.Query("quarantined"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			dbq = dbq.Where("plant_is_quarantined = ?", b)
		}
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count plants")
	}

	var rows []pModel.PlantModel
	if err := dbq.
		Preload("Genetic").
		Preload("Batch").
		Preload("Location").
		Order("plant_created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list plants")
	}

	items := make([]*pDTO.PlantResponse, 0, len(rows))
	for i := range rows {
		items = append(items, pDTO.NewPlantResponse(&rows[i]))
	}

	return c.JSON(fiber.Map{
		"data":       items,
		"pagination": helper.BuildMeta(total, p, len(items)),
	})
}

// GET /api/u/plants/:id
func (h *PlantController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}

	var m pModel.PlantModel
	if err := h.DB.WithContext(c.UserContext()).
		Preload("Genetic").
		Preload("Batch").
		Preload("Location").
		Where("plant_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Plant not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch plant")
	}
	return helper.Success(c, "OK", pDTO.NewPlantResponse(&m))
}

// PATCH /api/u/plants/:id
//
// Batch membership and the destroyed stage both move batch_plant_count, so
// the whole update runs in one transaction.
func (h *PlantController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}

	var req pDTO.UpdatePlantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var m pModel.PlantModel
	txErr := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plant_id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Plant not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch plant")
		}

		oldBatchID := m.PlantBatchID
		oldCounted := oldBatchID != nil && m.PlantStage != pModel.PlantStageDestroyed

		// batch field handled here, everything else via ApplyToModel
		newBatchID := oldBatchID
		if v, ok := req.PlantBatchID.Get(); ok {
			newBatchID = v
		}
		req.ApplyToModel(&m)
		m.PlantBatchID = newBatchID

		if m.PlantStage == pModel.PlantStageDestroyed && m.PlantDestroyReason == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Destroying a plant requires a destroy reason")
		}

		if err := checkReferences(tx, refIfChanged(req.PlantGeneticID, m.PlantGeneticID), batchRefIfChanged(oldBatchID, newBatchID), refIfChanged(req.PlantMotherID, m.PlantMotherID), refIfChanged(req.PlantLocationID, m.PlantLocationID)); err != nil {
			return err
		}

		if err := tx.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update plant")
		}

		newCounted := m.PlantBatchID != nil && m.PlantStage != pModel.PlantStageDestroyed
		batchChanged := !uuidPtrEqual(oldBatchID, m.PlantBatchID)

		if oldCounted && (batchChanged || !newCounted) {
			if err := adjustBatchCount(tx, *oldBatchID, -1); err != nil {
				return err
			}
		}
		if newCounted && (batchChanged || !oldCounted) {
			if err := adjustBatchCount(tx, *m.PlantBatchID, +1); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return asFiberError(txErr, "Failed to update plant")
	}

	return helper.Success(c, "Plant updated", pDTO.NewPlantResponse(&m))
}

// DELETE /api/u/plants/:id
func (h *PlantController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}

	txErr := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m pModel.PlantModel
		if err := tx.Where("plant_id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Plant not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch plant")
		}

		var childCount int64
		if err := tx.Model(&pModel.PlantModel{}).Where("plant_mother_id = ?", id).Count(&childCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check clone references")
		}
		if childCount > 0 {
			return fiber.NewError(fiber.StatusPreconditionFailed,
				fmt.Sprintf("Plant is the mother of %d clone(s)", childCount))
		}

		if err := tx.Delete(&pModel.PlantModel{}, "plant_id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete plant")
		}

		if m.PlantBatchID != nil && m.PlantStage != pModel.PlantStageDestroyed {
			if err := adjustBatchCount(tx, *m.PlantBatchID, -1); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return asFiberError(txErr, "Failed to delete plant")
	}

	return helper.Success(c, "Plant deleted", fiber.Map{"plant_id": id})
}

/* ===================== HELPERS ===================== */

// checkReferences verifies any non-nil foreign key points at an existing
// row; failures are precondition errors, not 500s.
func checkReferences(tx *gorm.DB, geneticID, batchID, motherID, locationID *uuid.UUID) error {
	if geneticID != nil {
		if err := mustExist(tx, &gModel.GeneticModel{}, "genetic_id", *geneticID, "Referenced genetic does not exist"); err != nil {
			return err
		}
	}
	if batchID != nil {
		if err := mustExist(tx, &bModel.BatchModel{}, "batch_id", *batchID, "Referenced batch does not exist"); err != nil {
			return err
		}
	}
	if motherID != nil {
		if err := mustExist(tx, &pModel.PlantModel{}, "plant_id", *motherID, "Referenced mother plant does not exist"); err != nil {
			return err
		}
	}
	if locationID != nil {
		if err := mustExist(tx, &lModel.LocationModel{}, "location_id", *locationID, "Referenced location does not exist"); err != nil {
			return err
		}
	}
	return nil
}

func mustExist(tx *gorm.DB, model any, column string, id uuid.UUID, msg string) error {
	var count int64
	if err := tx.Model(model).Where(column+" = ?", id).Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check references")
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusPreconditionFailed, msg)
	}
	return nil
}

func adjustBatchCount(tx *gorm.DB, batchID uuid.UUID, delta int) error {
	if err := tx.Model(&bModel.BatchModel{}).
		Where("batch_id = ?", batchID).
		UpdateColumn("batch_plant_count", gorm.Expr("batch_plant_count + ?", delta)).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to adjust batch plant count")
	}
	return nil
}

// refIfChanged only re-validates a reference the payload actually touched.
func refIfChanged(opt helper.Optional[uuid.UUID], current *uuid.UUID) *uuid.UUID {
	if !opt.Present {
		return nil
	}
	return current
}

func batchRefIfChanged(oldID, newID *uuid.UUID) *uuid.UUID {
	if uuidPtrEqual(oldID, newID) {
		return nil
	}
	return newID
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func asFiberError(err error, fallback string) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}
