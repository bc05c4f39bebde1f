package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/configs"
	"lms_backend/internals/constants"
	authHelper "lms_backend/internals/features/users/auth/helper"
	authRepo "lms_backend/internals/features/users/auth/repository"
	userDTO "lms_backend/internals/features/users/user/dto"
	userModel "lms_backend/internals/features/users/user/model"
	helpers "lms_backend/internals/helpers"
)

// Local-login failures. NotFound and BadPassword collapse to the same client
// message so the response does not leak which one happened; NoPasswordSet gets
// its own guidance because the fix is "use Google sign-in", not "retype it".
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNoPasswordSet = errors.New("account has no password, use Google sign-in")
	ErrBadPassword   = errors.New("password mismatch")
)

// AuthService owns authentication: password and Google login, registration,
// and session token issuance. All configuration is injected; nothing here
// reads env vars.
type AuthService struct {
	Tokens         *TokenService
	Verifier       GoogleTokenVerifier
	GoogleClientID string
}

func NewAuthService(cfg configs.AuthConfig) *AuthService {
	return &AuthService{
		Tokens:         NewTokenService(cfg),
		Verifier:       NewGoogleTokenVerifier(),
		GoogleClientID: cfg.GoogleClientID,
	}
}

/* ==========================
   REGISTER
========================== */

func (s *AuthService) Register(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := authHelper.ValidateRegisterInput(input.Name, input.Email, input.Password, input.Role); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	passwordHash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		UserName: strings.TrimSpace(input.Name),
		Email:    input.Email,
		Password: &passwordHash,
		Role:     input.Role,
	}
	if err := authRepo.CreateUser(db, &user); err != nil {
		if isDuplicateKeyErr(err) {
			return helpers.JsonError(c, fiber.StatusConflict, "User already exists")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	token, err := s.Tokens.IssueToken(user.ID, user.Role)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helpers.JsonCreated(c, "Registration successful", fiber.Map{
		"token": token,
		"user":  userDTO.ToUserResponse(&user),
	})
}

/* ==========================
   LOGIN (email + password)
========================== */

// ResolveLocalUser maps email+password to the account, distinguishing
// NotFound, NoPasswordSet and BadPassword for the caller.
func ResolveLocalUser(db *gorm.DB, email, password string) (*userModel.UserModel, error) {
	user, err := authRepo.FindUserByEmail(db, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.HasPassword() {
		return nil, ErrNoPasswordSet
	}
	if err := authHelper.CheckPasswordHash(*user.Password, password); err != nil {
		return nil, ErrBadPassword
	}
	return user, nil
}

func (s *AuthService) Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := authHelper.ValidateLoginInput(input.Email, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := ResolveLocalUser(db, input.Email, input.Password)
	switch {
	case errors.Is(err, ErrNoPasswordSet):
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Please use Google Sign-In for this account")
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrBadPassword):
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	case err != nil:
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}

	return s.respondWithToken(c, user, "Login successful")
}

/* ==========================
   LOGIN GOOGLE
========================== */

// ResolveFederatedUser maps verified Google claims to exactly one account:
// match by email OR google_id (soft merge), backfill google_id+avatar on an
// email-only match, create a student account when nothing matches. Federated
// sign-up never grants the teacher role.
func ResolveFederatedUser(db *gorm.DB, claims *GoogleClaims) (*userModel.UserModel, error) {
	user, matchedBy, err := authRepo.FindUserByEmailOrGoogleID(db, claims.Email, claims.Sub)
	if err == nil {
		if matchedBy == authRepo.MatchedByEmail && (user.GoogleID == nil || *user.GoogleID == "") {
			if err := authRepo.AttachGoogleIdentity(db, user.ID, claims.Sub, strptr(claims.Picture)); err != nil {
				return nil, err
			}
			return authRepo.FindUserByID(db, user.ID)
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newUser := userModel.UserModel{
		UserName: claims.Name,
		Email:    claims.Email,
		GoogleID: strptr(claims.Sub),
		Avatar:   strptr(claims.Picture),
		Role:     constants.RoleStudent, // default role, never teacher
	}
	if err := authRepo.CreateUser(db, &newUser); err != nil {
		if isDuplicateKeyErr(err) {
			// lost a race with a concurrent first login; the row exists now
			existing, _, ferr := authRepo.FindUserByEmailOrGoogleID(db, claims.Email, claims.Sub)
			if ferr != nil {
				return nil, ferr
			}
			return existing, nil
		}
		return nil, err
	}
	return &newUser, nil
}

func (s *AuthService) LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(input.Token) == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Google token is required")
	}
	if s.GoogleClientID == "" {
		return helpers.JsonUpstreamAuthError(c, "Google OAuth not configured on server")
	}

	claims, err := s.Verifier.Verify(input.Token, s.GoogleClientID)
	if err != nil {
		return helpers.JsonUpstreamAuthError(c, "Invalid Google ID token")
	}

	user, err := ResolveFederatedUser(db, claims)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve Google user")
	}

	return s.respondWithToken(c, user, "Google authentication successful")
}

/* ==========================
   ME
========================== */

func (s *AuthService) Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.UserIDFromLocals(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helpers.JsonOK(c, "ok", fiber.Map{"user": userDTO.ToUserResponse(user)})
}

/* ==========================
   UTIL
========================== */

func (s *AuthService) respondWithToken(c *fiber.Ctx, user *userModel.UserModel, message string) error {
	token, err := s.Tokens.IssueToken(user.ID, user.Role)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	return helpers.JsonOK(c, message, fiber.Map{
		"token": token,
		"user":  userDTO.ToUserResponse(user),
	})
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique")
}
