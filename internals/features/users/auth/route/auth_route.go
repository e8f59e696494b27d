package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authCtrl "growlog_backend/internals/features/users/auth/controller"
	"growlog_backend/internals/middlewares"
)

// AuthRoutes registers the public auth endpoints; /me is mounted on the
// authenticated group separately.
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	h := authCtrl.NewAuthController(db)

	g := r.Group("/auth")
	g.Post("/register", h.Register)
	g.Post("/login", middlewares.LoginRateLimiter(), h.Login)
}

// MeRoutes registers the token-introspection endpoint on an authenticated group.
func MeRoutes(r fiber.Router, db *gorm.DB) {
	h := authCtrl.NewAuthController(db)
	r.Get("/auth/me", h.Me)
}
