package auth

import (
	"github.com/gofiber/fiber/v2"

	helpers "lms_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError gates a route on role with a custom 403 message.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := helpers.UserRoleFromLocals(c)
		if !ok {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helpers.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

// OnlyRoles keeps route wiring terse.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
