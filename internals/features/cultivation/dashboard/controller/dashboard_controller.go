package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bModel "growlog_backend/internals/features/cultivation/batches/model"
	dDTO "growlog_backend/internals/features/cultivation/dashboard/dto"
	gModel "growlog_backend/internals/features/cultivation/genetics/model"
	pModel "growlog_backend/internals/features/cultivation/plants/model"
	helper "growlog_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

/* ===================== HANDLERS ===================== */

// GET /api/u/dashboard/summary
func (h *DashboardController) Summary(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var resp dDTO.SummaryResponse

	if err := h.DB.WithContext(ctx).Model(&gModel.GeneticModel{}).Count(&resp.TotalGenetics).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count genetics")
	}
	if err := h.DB.WithContext(ctx).Model(&bModel.BatchModel{}).Count(&resp.TotalBatches).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count batches")
	}
	if err := h.DB.WithContext(ctx).Model(&bModel.BatchModel{}).
		Where("batch_status = ?", bModel.BatchStatusActive).
		Count(&resp.ActiveBatches).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count active batches")
	}
	if err := h.DB.WithContext(ctx).Model(&pModel.PlantModel{}).Count(&resp.TotalPlants).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count plants")
	}
	if err := h.DB.WithContext(ctx).Model(&pModel.PlantModel{}).
		Where("plant_is_quarantined = ?", true).
		Count(&resp.QuarantinedPlants).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count quarantined plants")
	}

	resp.PlantsByStage = make([]dDTO.StageCount, 0, 8)
	if err := h.DB.WithContext(ctx).Model(&pModel.PlantModel{}).
		Select("plant_stage AS stage, COUNT(*) AS count").
		Group("plant_stage").
		Order("count DESC").
		Scan(&resp.PlantsByStage).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to aggregate stages")
	}

	resp.PlantsByGenetic = make([]dDTO.GeneticPlantCount, 0, 10)
	if err := h.DB.WithContext(ctx).Raw(`
		SELECT g.genetic_id, g.genetic_name, g.genetic_slug, COUNT(p.plant_id) AS plant_count
		FROM genetics g
		LEFT JOIN plants p ON p.plant_genetic_id = g.genetic_id
		GROUP BY g.genetic_id, g.genetic_name, g.genetic_slug
		ORDER BY plant_count DESC, lower(g.genetic_name) ASC
		LIMIT 10`).Scan(&resp.PlantsByGenetic).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to aggregate plants per genetic")
	}

	return helper.Success(c, "OK", resp)
}
