package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bCtrl "growlog_backend/internals/features/cultivation/batches/controller"
)

func BatchRoutes(r fiber.Router, db *gorm.DB) {
	h := bCtrl.NewBatchController(db)

	g := r.Group("/batches")
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.Detail)
	g.Patch("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
