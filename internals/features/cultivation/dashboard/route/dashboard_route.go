package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dCtrl "growlog_backend/internals/features/cultivation/dashboard/controller"
)

func DashboardRoutes(r fiber.Router, db *gorm.DB) {
	h := dCtrl.NewDashboardController(db)

	g := r.Group("/dashboard")
	g.Get("/summary", h.Summary)
}
