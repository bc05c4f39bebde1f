package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	authService "lms_backend/internals/features/users/auth/service"
	helpers "lms_backend/internals/helpers"
)

// AuthMiddleware verifies the bearer token (Authorization header or
// access_token cookie) and stores user_id and userRole in Locals. Expired,
// tampered and malformed tokens all end the request with 401.
func AuthMiddleware(tokens *authService.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helpers.GetRawAccessToken(c)
		if raw == "" {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - missing token")
		}

		userID, role, err := tokens.VerifyToken(raw)
		if err != nil {
			switch {
			case errors.Is(err, authService.ErrTokenExpired):
				return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - token expired")
			case errors.Is(err, authService.ErrTokenBadSignature):
				return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - token signature invalid")
			default:
				return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - token invalid")
			}
		}

		c.Locals(helpers.LocUserID, userID.String())
		c.Locals(helpers.LocUserRole, role)
		helpers.SetRawAccessToken(c, raw)
		return c.Next()
	}
}
