package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/constants"
	authService "lms_backend/internals/features/users/auth/service"
	"lms_backend/internals/features/users/user/controller"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

// UserRoutes wires /api/profile and /api/students.
func UserRoutes(app *fiber.App, db *gorm.DB, tokens *authService.TokenService) {
	userController := controller.NewUserController(db)

	profile := app.Group("/api/profile", authMiddleware.AuthMiddleware(tokens))
	profile.Get("/", userController.GetProfile)
	profile.Put("/", userController.UpdateProfile)

	students := app.Group("/api/students",
		authMiddleware.AuthMiddleware(tokens),
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("student list"), constants.RoleTeacher),
	)
	students.Get("/", userController.ListStudents)
}
