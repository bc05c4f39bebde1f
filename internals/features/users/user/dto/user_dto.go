package dto

import (
	"time"

	"github.com/google/uuid"

	"lms_backend/internals/features/users/user/model"
)

// UserResponse is the safe projection of a user (no password, no google id).
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserResponse(u *model.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		Role:      u.Role,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

func ToUserResponses(users []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out
}

type UpdateProfileRequest struct {
	UserName *string `json:"user_name" validate:"omitempty,min=2,max=50"`
	Avatar   *string `json:"avatar" validate:"omitempty,url,max=512"`
}
