package model

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Validator instance
var validate = validator.New()

// UserModel represents the users table. Password is NULL for accounts created
// through Google sign-in; GoogleID is NULL for password-only accounts. Every
// account must carry at least one of the two.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName  string    `gorm:"size:50;not null" json:"user_name" validate:"required,min=2,max=50"`
	Email     string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password  *string   `gorm:"size:255" json:"-"`
	GoogleID  *string   `gorm:"size:255;unique" json:"-"`
	Avatar    *string   `gorm:"size:512" json:"avatar,omitempty"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role" validate:"required,oneof=teacher student"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if !u.HasPassword() && (u.GoogleID == nil || *u.GoogleID == "") {
		return errors.New("user needs a password or a google identity")
	}
	return nil
}

// HasPassword reports whether local (password) login is possible.
func (u *UserModel) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// Validate checks the struct against its validate tags.
func (u *UserModel) Validate() error {
	return validate.Struct(u)
}

// NormalizeEmail trims and lowercases so email matching is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
