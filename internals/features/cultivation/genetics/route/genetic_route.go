package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gCtrl "growlog_backend/internals/features/cultivation/genetics/controller"
)

func GeneticRoutes(r fiber.Router, db *gorm.DB) {
	h := gCtrl.NewGeneticController(db)

	g := r.Group("/genetics")
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/by-slug/:slug", h.GetBySlug)
	g.Get("/:id", h.Detail)
	g.Patch("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
