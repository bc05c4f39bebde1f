package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "lms_backend/internals/features/users/user/model"
)

/* ====================== USER LOOKUPS ====================== */

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", userModel.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// MatchedBy tags which key linked a federated login to an existing account.
type MatchedBy int

const (
	MatchedNone MatchedBy = iota
	MatchedByEmail
	MatchedByGoogleID
)

// FindUserByEmailOrGoogleID is the soft-merge lookup for Google sign-in:
// either key is sufficient, so a user who registered locally and later signs
// in with Google on the same email is linked instead of duplicated.
func FindUserByEmailOrGoogleID(db *gorm.DB, email, googleID string) (*userModel.UserModel, MatchedBy, error) {
	var user userModel.UserModel
	err := db.Where("email = ? OR google_id = ?", userModel.NormalizeEmail(email), googleID).
		First(&user).Error
	if err != nil {
		return nil, MatchedNone, err
	}
	if user.GoogleID != nil && *user.GoogleID == googleID {
		return &user, MatchedByGoogleID, nil
	}
	return &user, MatchedByEmail, nil
}

/* ====================== USER WRITES ====================== */

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	user.Email = userModel.NormalizeEmail(user.Email)
	return db.Create(user).Error
}

// AttachGoogleIdentity backfills google_id and the Google avatar onto an
// account first created with a password. One-time linking.
func AttachGoogleIdentity(db *gorm.DB, userID uuid.UUID, googleID string, avatar *string) error {
	updates := map[string]any{"google_id": googleID}
	if avatar != nil && strings.TrimSpace(*avatar) != "" {
		updates["avatar"] = strings.TrimSpace(*avatar)
	}
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Updates(updates).Error
}
