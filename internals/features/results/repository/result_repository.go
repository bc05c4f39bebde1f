package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms_backend/internals/features/results/model"
)

// ErrDuplicateKey tags the store's unique-constraint rejection on
// (student_id, subject). InsertResult is effectively {Created | DuplicateKey};
// the service converts DuplicateKey into its retry-as-update path.
var ErrDuplicateKey = errors.New("result already exists for this student and subject")

// ResultFilter is the explicit query predicate for the teacher listing.
type ResultFilter struct {
	StudentID       *uuid.UUID
	SubjectContains string
}

func FindResultByID(db *gorm.DB, id uuid.UUID) (*model.ResultModel, error) {
	var r model.ResultModel
	if err := db.Preload("Student").Preload("Teacher").First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func FindResultByStudentAndSubject(db *gorm.DB, studentID uuid.UUID, subject string) (*model.ResultModel, error) {
	var r model.ResultModel
	if err := db.Where("student_id = ? AND subject = ?", studentID, subject).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// InsertResult creates the row, relying on the composite unique index as the
// single arbiter of duplicates. A constraint rejection comes back as
// ErrDuplicateKey.
func InsertResult(db *gorm.DB, r *model.ResultModel) error {
	if err := db.Create(r).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// UpdateResult persists marks/grade/subject/teacher changes on an existing
// row. Subject changes can still trip the unique index, reported the same way
// as on insert.
func UpdateResult(db *gorm.DB, r *model.ResultModel) error {
	err := db.Model(&model.ResultModel{}).Where("id = ?", r.ID).Updates(map[string]any{
		"subject":    r.Subject,
		"marks":      r.Marks,
		"grade":      r.Grade,
		"teacher_id": r.TeacherID,
	}).Error
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// DeleteResultByID removes the row; reports gorm.ErrRecordNotFound when
// nothing matched so deletion failures are observable, and repeat deletes
// read as not-found.
func DeleteResultByID(db *gorm.DB, id uuid.UUID) error {
	res := db.Where("id = ?", id).Delete(&model.ResultModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindResults lists results for teachers, newest first, with the optional
// filter predicate applied.
func FindResults(db *gorm.DB, filter ResultFilter, offset, limit int) ([]model.ResultModel, int64, error) {
	q := db.Model(&model.ResultModel{})
	if filter.StudentID != nil {
		q = q.Where("student_id = ?", *filter.StudentID)
	}
	if s := strings.TrimSpace(filter.SubjectContains); s != "" {
		q = q.Where("LOWER(subject) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []model.ResultModel
	err := q.Preload("Student").Preload("Teacher").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// FindResultsByStudent lists one student's results sorted by subject.
func FindResultsByStudent(db *gorm.DB, studentID uuid.UUID) ([]model.ResultModel, error) {
	var results []model.ResultModel
	err := db.Preload("Teacher").
		Where("student_id = ?", studentID).
		Order("subject ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique")
}
