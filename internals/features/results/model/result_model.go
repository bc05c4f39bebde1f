package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "lms_backend/internals/features/users/user/model"
)

// ResultModel represents the results table: one subject score for one
// student, recorded by a teacher. The composite unique index on
// (student_id, subject) is the consistency anchor — the database, not the
// application, decides races on it.
type ResultModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_results_student_subject" json:"student_id"`
	Subject   string    `gorm:"size:120;not null;uniqueIndex:uq_results_student_subject" json:"subject"`
	Marks     float64   `gorm:"not null" json:"marks"`
	Grade     string    `gorm:"type:varchar(2);not null" json:"grade"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null" json:"teacher_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Student *userModel.UserModel `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Teacher *userModel.UserModel `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (ResultModel) TableName() string {
	return "results"
}

func (r *ResultModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// MarksInRange reports whether marks are inside the accepted [0,100] band.
func MarksInRange(marks float64) bool {
	return marks >= 0 && marks <= 100
}

// CalculateGrade maps marks to the letter grade. Inclusive lower bounds,
// evaluated top-down; total over the accepted marks range.
func CalculateGrade(marks float64) string {
	switch {
	case marks >= 90:
		return "A+"
	case marks >= 80:
		return "A"
	case marks >= 70:
		return "B+"
	case marks >= 60:
		return "B"
	case marks >= 50:
		return "C+"
	case marks >= 40:
		return "C"
	case marks >= 30:
		return "D"
	default:
		return "F"
	}
}
