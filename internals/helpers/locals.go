package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by the auth middleware.
const (
	LocUserID   = "user_id"
	LocUserRole = "userRole"
)

// UserIDFromLocals reads the authenticated user id placed by the middleware.
func UserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	v, ok := c.Locals(LocUserID).(string)
	if !ok || v == "" {
		return uuid.Nil, errors.New("Invalid user ID in context")
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, errors.New("Invalid UUID format")
	}
	return id, nil
}

// UserRoleFromLocals reads the authenticated role placed by the middleware.
func UserRoleFromLocals(c *fiber.Ctx) (string, bool) {
	role, ok := c.Locals(LocUserRole).(string)
	return role, ok && role != ""
}
