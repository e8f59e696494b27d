package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	pCtrl "growlog_backend/internals/features/cultivation/plants/controller"
)

func PlantRoutes(r fiber.Router, db *gorm.DB) {
	h := pCtrl.NewPlantController(db)

	g := r.Group("/plants")
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.Detail)
	g.Patch("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
