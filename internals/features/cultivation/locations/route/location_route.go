package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	lCtrl "growlog_backend/internals/features/cultivation/locations/controller"
)

func LocationRoutes(r fiber.Router, db *gorm.DB) {
	h := lCtrl.NewLocationController(db)

	g := r.Group("/locations")
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.Detail)
	g.Patch("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
