package dto

import (
	"time"

	"github.com/google/uuid"

	"lms_backend/internals/features/results/model"
)

type CreateResultRequest struct {
	StudentID uuid.UUID `json:"student_id"`
	Subject   string    `json:"subject"`
	Marks     *float64  `json:"marks"`
}

type UpdateResultRequest struct {
	Subject *string  `json:"subject"`
	Marks   *float64 `json:"marks"`
}

// PersonRef is the light user projection embedded in result responses.
type PersonRef struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"user_name"`
	Email    string    `json:"email,omitempty"`
}

type ResultResponse struct {
	ID        uuid.UUID  `json:"id"`
	Subject   string     `json:"subject"`
	Marks     float64    `json:"marks"`
	Grade     string     `json:"grade"`
	Student   *PersonRef `json:"student,omitempty"`
	Teacher   *PersonRef `json:"teacher,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func ToResultResponse(r *model.ResultModel) ResultResponse {
	resp := ResultResponse{
		ID:        r.ID,
		Subject:   r.Subject,
		Marks:     r.Marks,
		Grade:     r.Grade,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Student != nil {
		resp.Student = &PersonRef{ID: r.Student.ID, UserName: r.Student.UserName, Email: r.Student.Email}
	} else {
		resp.Student = &PersonRef{ID: r.StudentID}
	}
	if r.Teacher != nil {
		// teacher email is not the student's business
		resp.Teacher = &PersonRef{ID: r.Teacher.ID, UserName: r.Teacher.UserName}
	} else {
		resp.Teacher = &PersonRef{ID: r.TeacherID}
	}
	return resp
}

func ToResultResponses(results []model.ResultModel) []ResultResponse {
	out := make([]ResultResponse, 0, len(results))
	for i := range results {
		out = append(out, ToResultResponse(&results[i]))
	}
	return out
}
