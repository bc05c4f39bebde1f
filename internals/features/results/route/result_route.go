package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/constants"
	"lms_backend/internals/features/results/controller"
	authService "lms_backend/internals/features/users/auth/service"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

// ResultRoutes wires /api/results. Teachers manage records; students read
// only their own ("/my" plus the per-record ownership check in the
// controller). "/my" must be registered before "/:id".
func ResultRoutes(app *fiber.App, db *gorm.DB, tokens *authService.TokenService) {
	resultController := controller.NewResultController(db)

	results := app.Group("/api/results", authMiddleware.AuthMiddleware(tokens))

	teacherOnly := authMiddleware.OnlyRoles(constants.RoleErrorTeacher("results"), constants.RoleTeacher)
	studentOnly := authMiddleware.OnlyRoles(constants.RoleErrorStudent("own results"), constants.RoleStudent)

	results.Post("/", teacherOnly, resultController.CreateOrUpdate)
	results.Get("/", teacherOnly, resultController.List)
	results.Get("/my", studentOnly, resultController.My)
	results.Get("/:id", resultController.GetByID)
	results.Put("/:id", teacherOnly, resultController.Update)
	results.Delete("/:id", teacherOnly, resultController.Delete)
}
