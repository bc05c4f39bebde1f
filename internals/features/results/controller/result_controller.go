package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms_backend/internals/constants"
	"lms_backend/internals/features/results/dto"
	"lms_backend/internals/features/results/repository"
	"lms_backend/internals/features/results/service"
	helpers "lms_backend/internals/helpers"
)

type ResultController struct {
	DB *gorm.DB
}

func NewResultController(db *gorm.DB) *ResultController {
	return &ResultController{DB: db}
}

// CreateOrUpdate records a score for (student, subject). Re-recording the
// same pair updates the existing record instead of adding a second one.
func (rc *ResultController) CreateOrUpdate(c *fiber.Ctx) error {
	teacherID, err := helpers.UserIDFromLocals(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.StudentID == uuid.Nil || req.Subject == "" || req.Marks == nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Student ID, subject, and marks are required")
	}

	result, created, err := service.RecordResult(rc.DB, teacherID, req.StudentID, req.Subject, *req.Marks)
	if err != nil {
		return resultErrorToJson(c, err)
	}

	if created {
		return helpers.JsonCreated(c, "Result added successfully", dto.ToResultResponse(result))
	}
	return helpers.JsonUpdated(c, "Result updated successfully", dto.ToResultResponse(result))
}

// Update edits an existing record by id.
func (rc *ResultController) Update(c *fiber.Ctx) error {
	teacherID, err := helpers.UserIDFromLocals(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	resultID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid result ID")
	}

	var req dto.UpdateResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Marks == nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Marks are required")
	}

	result, err := service.UpdateResult(rc.DB, teacherID, resultID, *req.Marks, req.Subject)
	if err != nil {
		return resultErrorToJson(c, err)
	}
	return helpers.JsonUpdated(c, "Result updated successfully", dto.ToResultResponse(result))
}

// List returns all results for teachers, filterable by student and subject.
func (rc *ResultController) List(c *fiber.Ctx) error {
	filter := repository.ResultFilter{
		SubjectContains: c.Query("subject"),
	}
	if s := c.Query("student_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid student ID")
		}
		filter.StudentID = &id
	}

	paging := helpers.ResolvePaging(c, 20, 100)
	results, total, err := repository.FindResults(rc.DB, filter, paging.Offset, paging.Limit)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load results")
	}

	pagination := helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helpers.JsonList(c, "ok", dto.ToResultResponses(results), &pagination)
}

// My returns the calling student's own results, sorted by subject.
func (rc *ResultController) My(c *fiber.Ctx) error {
	studentID, err := helpers.UserIDFromLocals(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	results, err := repository.FindResultsByStudent(rc.DB, studentID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load results")
	}
	return helpers.JsonList(c, "ok", dto.ToResultResponses(results), nil)
}

// GetByID returns one record. Students may only read their own; teachers may
// read any.
func (rc *ResultController) GetByID(c *fiber.Ctx) error {
	callerID, err := helpers.UserIDFromLocals(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role, _ := helpers.UserRoleFromLocals(c)

	resultID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid result ID")
	}

	result, err := repository.FindResultByID(rc.DB, resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Result not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load result")
	}

	if role == constants.RoleStudent && result.StudentID != callerID {
		return helpers.JsonError(c, fiber.StatusForbidden, "Access denied")
	}
	return helpers.JsonOK(c, "ok", dto.ToResultResponse(result))
}

// Delete removes a record by id.
func (rc *ResultController) Delete(c *fiber.Ctx) error {
	resultID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid result ID")
	}

	if err := service.DeleteResult(rc.DB, resultID); err != nil {
		return resultErrorToJson(c, err)
	}
	return helpers.JsonDeleted(c, "Result deleted successfully", nil)
}

func resultErrorToJson(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return helpers.JsonError(c, fiber.StatusNotFound, "Student not found")
	case errors.Is(err, service.ErrResultNotFound):
		return helpers.JsonError(c, fiber.StatusNotFound, "Result not found")
	case errors.Is(err, service.ErrInvalidMarks):
		return helpers.JsonError(c, fiber.StatusBadRequest, "Marks must be between 0 and 100")
	case errors.Is(err, service.ErrSubjectRequired):
		return helpers.JsonError(c, fiber.StatusBadRequest, "Subject is required")
	case errors.Is(err, service.ErrResultConflict):
		return helpers.JsonError(c, fiber.StatusConflict, "Result for this subject already exists")
	default:
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to save result")
	}
}
