package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/constants"
	resultDTO "lms_backend/internals/features/results/dto"
	resultRepo "lms_backend/internals/features/results/repository"
	"lms_backend/internals/features/users/user/dto"
	"lms_backend/internals/features/users/user/repository"
	helpers "lms_backend/internals/helpers"
)

var validate = validator.New()

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetProfile returns the caller's profile. Students also get their own
// results so the dashboard renders from one call.
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := helpers.UserIDFromLocals(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	user, err := repository.FindUserByID(uc.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}

	body := fiber.Map{"user": dto.ToUserResponse(user)}
	if user.Role == constants.RoleStudent {
		results, rerr := resultRepo.FindResultsByStudent(uc.DB, user.ID)
		if rerr != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load results")
		}
		body["results"] = resultDTO.ToResultResponses(results)
	}
	return helpers.JsonOK(c, "ok", body)
}

// UpdateProfile changes display name and/or avatar. Role and email stay
// immutable.
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helpers.UserIDFromLocals(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := repository.UpdateUserProfile(uc.DB, userID, req.UserName, req.Avatar)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return helpers.JsonUpdated(c, "Profile updated successfully", fiber.Map{"user": dto.ToUserResponse(user)})
}

// ListStudents lists student accounts for teachers, with optional
// case-insensitive search on name or email.
func (uc *UserController) ListStudents(c *fiber.Ctx) error {
	filter := repository.StudentFilter{Search: c.Query("search")}
	paging := helpers.ResolvePaging(c, 20, 100)

	students, total, err := repository.FindStudents(uc.DB, filter, paging.Offset, paging.Limit)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}

	pagination := helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helpers.JsonList(c, "ok", dto.ToUserResponses(students), &pagination)
}
