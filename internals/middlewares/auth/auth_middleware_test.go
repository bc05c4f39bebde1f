package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lms_backend/internals/configs"
	"lms_backend/internals/constants"
	authService "lms_backend/internals/features/users/auth/service"
	helpers "lms_backend/internals/helpers"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

func newTokens(ttl time.Duration) *authService.TokenService {
	return authService.NewTokenService(configs.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  ttl,
	})
}

// newProtectedApp mounts one authed route that echoes the locals the
// middleware is expected to populate.
func newProtectedApp(tokens *authService.TokenService, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{authMiddleware.AuthMiddleware(tokens)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		role, _ := helpers.UserRoleFromLocals(c)
		userID, err := helpers.UserIDFromLocals(c)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		return helpers.JsonOK(c, "ok", fiber.Map{"user_id": userID.String(), "role": role})
	})
	app.Get("/guarded", handlers...)
	return app
}

func doGet(t *testing.T, app *fiber.App, bearer string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTokens(time.Hour)
	app := newProtectedApp(tokens)
	userID := uuid.New()

	valid, err := tokens.IssueToken(userID, constants.RoleTeacher)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	expired, err := newTokens(-time.Minute).IssueToken(userID, constants.RoleTeacher)
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}
	foreign, err := authService.NewTokenService(configs.AuthConfig{
		JWTSecret: "other-secret",
		TokenTTL:  time.Hour,
	}).IssueToken(userID, constants.RoleTeacher)
	if err != nil {
		t.Fatalf("issue foreign token: %v", err)
	}

	tests := []struct {
		name       string
		bearer     string
		wantStatus int
	}{
		{"missing token", "", fiber.StatusUnauthorized},
		{"garbage token", "not-a-jwt", fiber.StatusUnauthorized},
		{"expired token", expired, fiber.StatusUnauthorized},
		{"wrong signing key", foreign, fiber.StatusUnauthorized},
		{"valid token", valid, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doGet(t, app, tt.bearer)
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus != fiber.StatusOK {
				return
			}

			var body struct {
				Success bool `json:"success"`
				Data    struct {
					UserID string `json:"user_id"`
					Role   string `json:"role"`
				} `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if !body.Success {
				t.Error("success = false, want true")
			}
			if body.Data.UserID != userID.String() {
				t.Errorf("user_id = %q, want %q", body.Data.UserID, userID)
			}
			if body.Data.Role != constants.RoleTeacher {
				t.Errorf("role = %q, want teacher", body.Data.Role)
			}
		})
	}
}

func TestOnlyRoles(t *testing.T) {
	tokens := newTokens(time.Hour)
	app := newProtectedApp(tokens, authMiddleware.OnlyRoles("Teachers only", constants.RoleTeacher))

	teacherTok, err := tokens.IssueToken(uuid.New(), constants.RoleTeacher)
	if err != nil {
		t.Fatalf("issue teacher token: %v", err)
	}
	studentTok, err := tokens.IssueToken(uuid.New(), constants.RoleStudent)
	if err != nil {
		t.Fatalf("issue student token: %v", err)
	}

	t.Run("allowed role passes", func(t *testing.T) {
		resp := doGet(t, app, teacherTok)
		defer resp.Body.Close()
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("other role gets 403 with the custom message", func(t *testing.T) {
		resp := doGet(t, app, studentTok)
		defer resp.Body.Close()
		if resp.StatusCode != fiber.StatusForbidden {
			t.Fatalf("status = %d, want 403", resp.StatusCode)
		}

		var body struct {
			Success   bool   `json:"success"`
			Message   string `json:"message"`
			ErrorCode string `json:"error_code"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Success {
			t.Error("success = true, want false")
		}
		if body.Message != "Teachers only" {
			t.Errorf("message = %q, want the custom message", body.Message)
		}
		if body.ErrorCode != "FORBIDDEN" {
			t.Errorf("error_code = %q, want FORBIDDEN", body.ErrorCode)
		}
	})
}
