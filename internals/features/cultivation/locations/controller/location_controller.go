package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	lDTO "growlog_backend/internals/features/cultivation/locations/dto"
	lModel "growlog_backend/internals/features/cultivation/locations/model"
	pModel "growlog_backend/internals/features/cultivation/plants/model"
	helper "growlog_backend/internals/helpers"
	helperAuth "growlog_backend/internals/helpers/auth"
)

type LocationController struct {
	DB *gorm.DB
}

func NewLocationController(db *gorm.DB) *LocationController {
	return &LocationController{DB: db}
}

/* ===================== HANDLERS ===================== */

// POST /api/u/locations
func (h *LocationController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req lDTO.CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.LocationName = strings.TrimSpace(req.LocationName)

	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(userID)
	if err := h.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create location")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Location created", lDTO.NewLocationResponse(m))
}

// GET /api/u/locations
func (h *LocationController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	dbq := h.DB.WithContext(ctx).Model(&lModel.LocationModel{})
	if v := strings.TrimSpace(c.Query("type")); v != "" {
		dbq = dbq.Where("location_type = ?", strings.ToLower(v))
	}

	var rows []lModel.LocationModel
	if err := dbq.Order("lower(location_name) ASC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list locations")
	}

	items := make([]*lDTO.LocationResponse, 0, len(rows))
	for i := range rows {
		items = append(items, lDTO.NewLocationResponse(&rows[i]))
	}
	return helper.Success(c, "OK", items)
}

// GET /api/u/locations/:id
func (h *LocationController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	m, err := h.findByID(c, id)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", lDTO.NewLocationResponse(m))
}

// PATCH /api/u/locations/:id
func (h *LocationController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}

	var req lDTO.UpdateLocationRequest
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
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update location")
	}
	return helper.Success(c, "Location updated", lDTO.NewLocationResponse(m))
}

// DELETE /api/u/locations/:id
func (h *LocationController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}

	if _, err := h.findByID(c, id); err != nil {
		return err
	}

	txErr := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var plantCount int64
		if err := tx.Model(&pModel.PlantModel{}).Where("plant_location_id = ?", id).Count(&plantCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check plant references")
		}
		if plantCount > 0 {
			return fiber.NewError(fiber.StatusPreconditionFailed,
				fmt.Sprintf("Location still houses %d plant(s)", plantCount))
		}

		if err := tx.Delete(&lModel.LocationModel{}, "location_id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete location")
		}
		return nil
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete location")
	}

	return helper.Success(c, "Location deleted", fiber.Map{"location_id": id})
}

/* ===================== HELPERS ===================== */

func (h *LocationController) findByID(c *fiber.Ctx, id uuid.UUID) (*lModel.LocationModel, error) {
	var m lModel.LocationModel
	if err := h.DB.WithContext(c.UserContext()).Where("location_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Location not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch location")
	}
	return &m, nil
}
