package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"lms_backend/internals/configs"
)

// Verification failures, one per way a bearer token can be bad.
var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
)

// TokenService mints and verifies the session bearer tokens. The signing
// secret and validity window come from the injected AuthConfig; verification
// is pure and touches no external state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(cfg configs.AuthConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

// IssueToken signs an HS256 token binding the user id and role for the
// configured validity window (7 days by default).
func (s *TokenService) IssueToken(userID uuid.UUID, role string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"id":   userID.String(),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken parses and validates a bearer token, returning the user id and
// role it binds. Failures map to ErrTokenExpired, ErrTokenBadSignature or
// ErrTokenMalformed.
func (s *TokenService) VerifyToken(raw string) (uuid.UUID, string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenBadSignature
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				return uuid.Nil, "", ErrTokenExpired
			case ve.Errors&jwt.ValidationErrorSignatureInvalid != 0:
				return uuid.Nil, "", ErrTokenBadSignature
			}
		}
		return uuid.Nil, "", ErrTokenMalformed
	}

	sub, _ := claims["sub"].(string)
	userID, perr := uuid.Parse(sub)
	if perr != nil {
		return uuid.Nil, "", ErrTokenMalformed
	}
	role, _ := claims["role"].(string)
	return userID, role, nil
}
