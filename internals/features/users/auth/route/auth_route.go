package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/users/auth/controller"
	"lms_backend/internals/features/users/auth/service"
	rateLimiter "lms_backend/internals/middlewares"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

// AuthRoutes wires /api/auth.
func AuthRoutes(app *fiber.App, db *gorm.DB, svc *service.AuthService) {
	authController := controller.NewAuthController(db, svc)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)

	// 🔒 Protected
	baseAuth.Get("/me", authMiddleware.AuthMiddleware(svc.Tokens), authController.Me)
}
