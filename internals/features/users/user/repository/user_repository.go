package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms_backend/internals/constants"
	"lms_backend/internals/features/users/user/model"
)

// StudentFilter is the explicit search predicate for the students listing:
// a single needle matched case-insensitively against name OR email.
type StudentFilter struct {
	Search string
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*model.UserModel, error) {
	var user model.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindStudents lists users with role student, name ascending.
func FindStudents(db *gorm.DB, filter StudentFilter, offset, limit int) ([]model.UserModel, int64, error) {
	q := db.Model(&model.UserModel{}).Where("role = ?", constants.RoleStudent)

	if s := strings.TrimSpace(filter.Search); s != "" {
		needle := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(email) LIKE ?", needle, needle)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []model.UserModel
	if err := q.Order("user_name ASC").Offset(offset).Limit(limit).Find(&students).Error; err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// UpdateUserProfile updates display name and/or avatar only; role and email
// are immutable here.
func UpdateUserProfile(db *gorm.DB, userID uuid.UUID, userName, avatar *string) (*model.UserModel, error) {
	updates := map[string]any{}
	if userName != nil && strings.TrimSpace(*userName) != "" {
		updates["user_name"] = strings.TrimSpace(*userName)
	}
	if avatar != nil && strings.TrimSpace(*avatar) != "" {
		updates["avatar"] = strings.TrimSpace(*avatar)
	}
	if len(updates) > 0 {
		if err := db.Model(&model.UserModel{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return FindUserByID(db, userID)
}
