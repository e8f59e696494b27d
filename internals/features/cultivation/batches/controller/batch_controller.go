package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bDTO "growlog_backend/internals/features/cultivation/batches/dto"
	bModel "growlog_backend/internals/features/cultivation/batches/model"
	gModel "growlog_backend/internals/features/cultivation/genetics/model"
	pModel "growlog_backend/internals/features/cultivation/plants/model"
	helper "growlog_backend/internals/helpers"
	helperAuth "growlog_backend/internals/helpers/auth"
)

type BatchController struct {
	DB *gorm.DB
}

func NewBatchController(db *gorm.DB) *BatchController {
	return &BatchController{DB: db}
}

/* ===================== HANDLERS ===================== */

// POST /api/u/batches
func (h *BatchController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req bDTO.CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.BatchName = strings.TrimSpace(req.BatchName)

	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	ctx := c.UserContext()

	var geneticCount int64
	if err := h.DB.WithContext(ctx).Model(&gModel.GeneticModel{}).
		Where("genetic_id = ?", req.BatchGeneticID).Count(&geneticCount).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check genetic")
	}
	if geneticCount == 0 {
		return fiber.NewError(fiber.StatusPreconditionFailed, "Referenced genetic does not exist")
	}

	m := req.ToModel(userID)
	if err := h.DB.WithContext(ctx).Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create batch")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Batch created", bDTO.NewBatchResponse(m))
}

// GET /api/u/batches
func (h *BatchController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := helper.ResolvePaging(c, 100, 0)

	dbq := h.DB.WithContext(ctx).Model(&bModel.BatchModel{})

	if v := strings.TrimSpace(c.Query("status")); v != "" {
		dbq = dbq.Where("batch_status = ?", strings.ToLower(v))
	}
	if v := strings.TrimSpace(c.Query("genetic_id")); v != "" {
		if gid, err := uuid.Parse(v); err == nil {
			dbq = dbq.Where("batch_genetic_id = ?", gid)
		}
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count batches")
	}

	var rows []bModel.BatchModel
	if err := dbq.
		Preload("Genetic").
		Preload("Owner").
		Order("batch_start_date DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list batches")
	}

	items := make([]*bDTO.BatchResponse, 0, len(rows))
	for i := range rows {
		items = append(items, bDTO.NewBatchResponse(&rows[i]))
	}

	return c.JSON(fiber.Map{
		"data":       items,
		"pagination": helper.BuildMeta(total, p, len(items)),
	})
}

// GET /api/u/batches/:id
func (h *BatchController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}

	var m bModel.BatchModel
	if err := h.DB.WithContext(c.UserContext()).
		Preload("Genetic").
		Preload("Owner").
		Where("batch_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Batch not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch batch")
	}
	return helper.Success(c, "OK", bDTO.NewBatchResponse(&m))
}

// PATCH /api/u/batches/:id
func (h *BatchController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}

	var req bDTO.UpdateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m, err := h.findByID(c, id)
	if err != nil {
		return err
	}

	req.ApplyToModel(m)

	if err := h.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update batch")
	}
	return helper.Success(c, "Batch updated", bDTO.NewBatchResponse(m))
}

// DELETE /api/u/batches/:id
func (h *BatchController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}

	if _, err := h.findByID(c, id); err != nil {
		return err
	}

	txErr := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var plantCount int64
		if err := tx.Model(&pModel.PlantModel{}).Where("plant_batch_id = ?", id).Count(&plantCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check plant references")
		}
		if plantCount > 0 {
			return fiber.NewError(fiber.StatusPreconditionFailed,
				fmt.Sprintf("Batch still contains %d plant(s)", plantCount))
		}

		if err := tx.Delete(&bModel.BatchModel{}, "batch_id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete batch")
		}
		return nil
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete batch")
	}

	return helper.Success(c, "Batch deleted", fiber.Map{"batch_id": id})
}

/* ===================== HELPERS ===================== */

func (h *BatchController) findByID(c *fiber.Ctx, id uuid.UUID) (*bModel.BatchModel, error) {
	var m bModel.BatchModel
	if err := h.DB.WithContext(c.UserContext()).Where("batch_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Batch not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch batch")
	}
	return &m, nil
}
