package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	bModel "growlog_backend/internals/features/cultivation/batches/model"
	gDTO "growlog_backend/internals/features/cultivation/genetics/dto"
	gModel "growlog_backend/internals/features/cultivation/genetics/model"
	pModel "growlog_backend/internals/features/cultivation/plants/model"
	helper "growlog_backend/internals/helpers"
	helperAuth "growlog_backend/internals/helpers/auth"
)

type GeneticController struct {
	DB *gorm.DB
}

func NewGeneticController(db *gorm.DB) *GeneticController {
	return &GeneticController{DB: db}
}

// The pre-check plus this many insert retries covers concurrent
// same-name creates racing past the availability check.
const slugInsertRetries = 3

/* ===================== HANDLERS ===================== */

// POST /api/u/genetics
func (h *GeneticController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req gDTO.CreateGeneticRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.GeneticName = strings.TrimSpace(req.GeneticName)

	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	ctx := c.UserContext()
	m := req.ToModel(userID)
	base := helper.GenerateSlug(req.GeneticName)

	for attempt := 0; attempt < slugInsertRetries; attempt++ {
		slug := base
		if attempt == 0 {
			if slug, err = helper.EnsureUniqueSlug(ctx, h.DB, "genetics", "genetic_slug", base, nil); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to check slug availability")
			}
		} else {
			// pre-check lost the race, lean on the unique index instead
			slug = helper.SlugWithTimeSuffix(base)
		}
		m.GeneticSlug = slug

		err = h.DB.WithContext(ctx).Create(m).Error
		if err == nil {
			return helper.SuccessWithCode(c, fiber.StatusCreated, "Genetic created", gDTO.NewGeneticResponse(m))
		}
		if !helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create genetic")
		}
	}
	return fiber.NewError(fiber.StatusConflict, "Could not allocate a unique slug, try again")
}

// GET /api/u/genetics
func (h *GeneticController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := helper.ResolvePaging(c, 100, 0)

	dbq := h.DB.WithContext(ctx).Model(&gModel.GeneticModel{})

	if v := strings.TrimSpace(c.Query("type")); v != "" {
		dbq = dbq.Where("genetic_type = ?", strings.ToLower(v))
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		dbq = dbq.Where("genetic_name ILIKE ? OR genetic_breeder ILIKE ?", "%"+v+"%", "%"+v+"%")
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count genetics")
	}

	var rows []gModel.GeneticModel
	if err := dbq.
		Preload("Creator").
		Order("lower(genetic_name) ASC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list genetics")
	}

	items := make([]*gDTO.GeneticResponse, 0, len(rows))
	for i := range rows {
		items = append(items, gDTO.NewGeneticResponse(&rows[i]))
	}

	return c.JSON(fiber.Map{
		"data":       items,
		"pagination": helper.BuildMeta(total, p, len(items)),
	})
}

// GET /api/u/genetics/by-slug/:slug
func (h *GeneticController) GetBySlug(c *fiber.Ctx) error {
	slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))
	if slug == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Slug is required")
	}

	var row geneticDetailRow
	res := h.DB.WithContext(c.UserContext()).Raw(geneticDetailQuery, slug).Scan(&row)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch genetic")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Genetic not found")
	}

	resp := gDTO.GeneticDetailResponse{
		GeneticResponse: *gDTO.NewGeneticResponse(&row.GeneticModel),
		PlantsCount:     row.PlantsCount,
		BatchesCount:    row.BatchesCount,
		Plants:          rawOrEmptyArray(row.Plants),
		Batches:         rawOrEmptyArray(row.Batches),
	}
	return helper.Success(c, "OK", resp)
}

// GET /api/u/genetics/:id
func (h *GeneticController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	m, err := h.findByID(c, id)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", gDTO.NewGeneticResponse(m))
}

// PATCH /api/u/genetics/:id
func (h *GeneticController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}

	var req gDTO.UpdateGeneticRequest
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

	ctx := c.UserContext()
	nameChanged := req.ApplyToModel(m)

	for attempt := 0; attempt < slugInsertRetries; attempt++ {
		if nameChanged {
			base := helper.GenerateSlug(m.GeneticName)
			slug := base
			if attempt == 0 {
				slug, err = helper.EnsureUniqueSlug(ctx, h.DB, "genetics", "genetic_slug", base, func(q *gorm.DB) *gorm.DB {
					return q.Where("genetic_id <> ?", id)
				})
				if err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Failed to check slug availability")
				}
			} else {
				slug = helper.SlugWithTimeSuffix(base)
			}
			m.GeneticSlug = slug
		}

		err = h.DB.WithContext(ctx).Save(m).Error
		if err == nil {
			return helper.Success(c, "Genetic updated", gDTO.NewGeneticResponse(m))
		}
		if !nameChanged || !helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update genetic")
		}
	}
	return fiber.NewError(fiber.StatusConflict, "Could not allocate a unique slug, try again")
}

// DELETE /api/u/genetics/:id
//
// Both dependency checks run inside the delete transaction so the counts
// cannot go stale between check and delete.
func (h *GeneticController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}

	if _, err := h.findByID(c, id); err != nil {
		return err
	}

	txErr := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var plantCount int64
		if err := tx.Model(&pModel.PlantModel{}).Where("plant_genetic_id = ?", id).Count(&plantCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check plant references")
		}
		if plantCount > 0 {
			return fiber.NewError(fiber.StatusPreconditionFailed,
				fmt.Sprintf("Genetic is still referenced by %d plant(s)", plantCount))
		}

		var batchCount int64
		if err := tx.Model(&bModel.BatchModel{}).Where("batch_genetic_id = ?", id).Count(&batchCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check batch references")
		}
		if batchCount > 0 {
			return fiber.NewError(fiber.StatusPreconditionFailed,
				fmt.Sprintf("Genetic is still referenced by %d batch(es)", batchCount))
		}

		if err := tx.Delete(&gModel.GeneticModel{}, "genetic_id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete genetic")
		}
		return nil
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete genetic")
	}

	return helper.Success(c, "Genetic deleted", fiber.Map{"genetic_id": id})
}

/* ===================== HELPERS ===================== */

func (h *GeneticController) findByID(c *fiber.Ctx, id uuid.UUID) (*gModel.GeneticModel, error) {
	var m gModel.GeneticModel
	if err := h.DB.WithContext(c.UserContext()).Where("genetic_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Genetic not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch genetic")
	}
	return &m, nil
}

type geneticDetailRow struct {
	gModel.GeneticModel
	PlantsCount  int64          `gorm:"column:plants_count"`
	BatchesCount int64          `gorm:"column:batches_count"`
	Plants       datatypes.JSON `gorm:"column:plants"`
	Batches      datatypes.JSON `gorm:"column:batches"`
}

// Zero related rows must surface as [], never null, hence the COALESCEs.
const geneticDetailQuery = `
SELECT g.*,
  (SELECT COUNT(*) FROM plants p WHERE p.plant_genetic_id = g.genetic_id) AS plants_count,
  (SELECT COUNT(*) FROM batches b WHERE b.batch_genetic_id = g.genetic_id) AS batches_count,
  COALESCE((SELECT json_agg(json_build_object(
      'plant_id', p.plant_id,
      'plant_stage', p.plant_stage,
      'plant_health_status', p.plant_health_status,
      'plant_is_quarantined', p.plant_is_quarantined,
      'plant_planted_at', p.plant_planted_at
    ) ORDER BY p.plant_created_at)
    FROM plants p WHERE p.plant_genetic_id = g.genetic_id), '[]'::json) AS plants,
  COALESCE((SELECT json_agg(json_build_object(
      'batch_id', b.batch_id,
      'batch_name', b.batch_name,
      'batch_status', b.batch_status,
      'batch_start_date', b.batch_start_date,
      'batch_plant_count', b.batch_plant_count
    ) ORDER BY b.batch_start_date DESC)
    FROM batches b WHERE b.batch_genetic_id = g.genetic_id), '[]'::json) AS batches
FROM genetics g
WHERE g.genetic_slug = ?`

func rawOrEmptyArray(j datatypes.JSON) json.RawMessage {
	if len(j) == 0 {
		return json.RawMessage("[]")
	}
	return json.RawMessage(j)
}
