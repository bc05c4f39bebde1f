package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms_backend/internals/constants"
	"lms_backend/internals/features/results/model"
	"lms_backend/internals/features/results/repository"
	userRepo "lms_backend/internals/features/users/user/repository"
)

// Engine failures, one per reportable condition.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrInvalidMarks    = errors.New("marks must be between 0 and 100")
	ErrSubjectRequired = errors.New("subject is required")
	ErrResultNotFound  = errors.New("result not found")
	ErrResultConflict  = errors.New("another result already exists for this student and subject")
)

// RecordResult is the create-or-update path for one (student, subject) score.
// The boolean reports whether a new record was created (false = updated in
// place). The unique index is the arbiter under concurrency: a lost insert
// race is retried once as an update.
func RecordResult(db *gorm.DB, teacherID, studentID uuid.UUID, subject string, marks float64) (*model.ResultModel, bool, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, false, ErrSubjectRequired
	}

	student, err := userRepo.FindUserByID(db, studentID)
	if err != nil || student.Role != constants.RoleStudent {
		return nil, false, ErrStudentNotFound
	}

	if !model.MarksInRange(marks) {
		return nil, false, ErrInvalidMarks
	}
	grade := model.CalculateGrade(marks)

	existing, err := repository.FindResultByStudentAndSubject(db, studentID, subject)
	if err == nil {
		updated, uerr := overwriteResult(db, existing, teacherID, subject, marks, grade)
		return updated, false, uerr
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	r := &model.ResultModel{
		StudentID: studentID,
		Subject:   subject,
		Marks:     marks,
		Grade:     grade,
		TeacherID: teacherID,
	}
	ierr := repository.InsertResult(db, r)
	if ierr == nil {
		return r, true, nil
	}
	if !errors.Is(ierr, repository.ErrDuplicateKey) {
		return nil, false, ierr
	}

	// A concurrent writer created the record between our lookup and insert.
	// The row exists now, so take the update path against it.
	existing, err = repository.FindResultByStudentAndSubject(db, studentID, subject)
	if err != nil {
		// should not happen with a correct store, surfaced as a conflict
		return nil, false, ErrResultConflict
	}
	updated, uerr := overwriteResult(db, existing, teacherID, subject, marks, grade)
	return updated, false, uerr
}

// UpdateResult edits an existing record by id: re-derives the grade and
// re-stamps the recording teacher. When the subject changes, the
// (student, new subject) key is re-checked so an edit cannot smuggle in a
// duplicate; the unique index backstops the race.
func UpdateResult(db *gorm.DB, teacherID, resultID uuid.UUID, marks float64, subject *string) (*model.ResultModel, error) {
	existing, err := repository.FindResultByID(db, resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}

	if !model.MarksInRange(marks) {
		return nil, ErrInvalidMarks
	}

	newSubject := existing.Subject
	if subject != nil {
		s := strings.TrimSpace(*subject)
		if s == "" {
			return nil, ErrSubjectRequired
		}
		newSubject = s
	}
	if newSubject != existing.Subject {
		if _, ferr := repository.FindResultByStudentAndSubject(db, existing.StudentID, newSubject); ferr == nil {
			return nil, ErrResultConflict
		} else if !errors.Is(ferr, gorm.ErrRecordNotFound) {
			return nil, ferr
		}
	}

	return overwriteResult(db, existing, teacherID, newSubject, marks, model.CalculateGrade(marks))
}

// DeleteResult removes a record; a second delete of the same id reports
// not-found, never a silent success of nothing.
func DeleteResult(db *gorm.DB, resultID uuid.UUID) error {
	if err := repository.DeleteResultByID(db, resultID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResultNotFound
		}
		return err
	}
	return nil
}

func overwriteResult(db *gorm.DB, existing *model.ResultModel, teacherID uuid.UUID, subject string, marks float64, grade string) (*model.ResultModel, error) {
	existing.Subject = subject
	existing.Marks = marks
	existing.Grade = grade
	existing.TeacherID = teacherID
	if err := repository.UpdateResult(db, existing); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrResultConflict
		}
		return nil, err
	}
	return repository.FindResultByID(db, existing.ID)
}
