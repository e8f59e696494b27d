package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"growlog_backend/internals/configs"
	batchRoute "growlog_backend/internals/features/cultivation/batches/route"
	dashboardRoute "growlog_backend/internals/features/cultivation/dashboard/route"
	geneticRoute "growlog_backend/internals/features/cultivation/genetics/route"
	locationRoute "growlog_backend/internals/features/cultivation/locations/route"
	plantRoute "growlog_backend/internals/features/cultivation/plants/route"
	authRoute "growlog_backend/internals/features/users/auth/route"
	authMiddleware "growlog_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== PUBLIC =====================
	log.Println("[INFO] setting up auth routes...")
	api := app.Group("/api")
	authRoute.AuthRoutes(api, db)

	// ===================== AUTHENTICATED =====================
	log.Println("[INFO] setting up authenticated group...")
	private := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	authRoute.MeRoutes(private, db)
	geneticRoute.GeneticRoutes(private, db)
	batchRoute.BatchRoutes(private, db)
	plantRoute.PlantRoutes(private, db)
	locationRoute.LocationRoutes(private, db)
	dashboardRoute.DashboardRoutes(private, db)
}
