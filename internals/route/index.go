package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/configs"
	resultRoute "lms_backend/internals/features/results/route"
	authRoute "lms_backend/internals/features/users/auth/route"
	authService "lms_backend/internals/features/users/auth/service"
	userRoute "lms_backend/internals/features/users/user/route"
	middlewares "lms_backend/internals/middlewares"
)

// SetupRoutes builds the auth service from the injected config and fans out
// to the feature route files.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg configs.AuthConfig) {
	svc := authService.NewAuthService(cfg)

	app.Use(middlewares.GlobalRateLimiter())

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db, svc)

	log.Println("[INFO] Setting up UserRoutes...")
	userRoute.UserRoutes(app, db, svc.Tokens)

	log.Println("[INFO] Setting up ResultRoutes...")
	resultRoute.ResultRoutes(app, db, svc.Tokens)
}
