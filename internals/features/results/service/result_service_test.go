package service_test

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"lms_backend/internals/constants"
	"lms_backend/internals/features/results/model"
	"lms_backend/internals/features/results/service"
	userModel "lms_backend/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// every :memory: connection is its own database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&userModel.UserModel{}, &model.ResultModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) *userModel.UserModel {
	t.Helper()
	pw := "x"
	u := &userModel.UserModel{
		UserName: name,
		Email:    email,
		Password: &pw,
		Role:     role,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return u
}

func countResults(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&model.ResultModel{}).Count(&n).Error; err != nil {
		t.Fatalf("count results: %v", err)
	}
	return n
}

func TestRecordResult_CreateThenOverwrite(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "Ms Rani", "rani@example.com", constants.RoleTeacher)
	teacher2 := seedUser(t, db, "Mr Adi", "adi@example.com", constants.RoleTeacher)
	student := seedUser(t, db, "Budi", "budi@example.com", constants.RoleStudent)

	first, created, err := service.RecordResult(db, teacher.ID, student.ID, "Math", 57.5)
	if err != nil {
		t.Fatalf("RecordResult() error = %v", err)
	}
	if !created {
		t.Error("first record should report created")
	}
	if first.Grade != "C+" {
		t.Errorf("grade = %q, want C+", first.Grade)
	}

	// same (student, subject) again: overwrite in place, no second row
	second, created, err := service.RecordResult(db, teacher2.ID, student.ID, "Math", 91)
	if err != nil {
		t.Fatalf("re-record error = %v", err)
	}
	if created {
		t.Error("re-record should report updated, not created")
	}
	if second.ID != first.ID {
		t.Errorf("re-record produced a new row %v, want %v", second.ID, first.ID)
	}
	if second.Marks != 91 || second.Grade != "A+" {
		t.Errorf("got marks=%v grade=%q, want 91 A+", second.Marks, second.Grade)
	}
	if second.TeacherID != teacher2.ID {
		t.Error("overwrite must re-stamp the recording teacher")
	}
	if n := countResults(t, db); n != 1 {
		t.Errorf("result count = %d, want 1", n)
	}

	// a different subject is a separate record
	if _, created, err = service.RecordResult(db, teacher.ID, student.ID, "Physics", 29.9); err != nil {
		t.Fatalf("second subject error = %v", err)
	}
	if !created {
		t.Error("new subject should create")
	}
	if n := countResults(t, db); n != 2 {
		t.Errorf("result count = %d, want 2", n)
	}
}

func TestRecordResult_Validation(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "Ms Rani", "rani@example.com", constants.RoleTeacher)
	student := seedUser(t, db, "Budi", "budi@example.com", constants.RoleStudent)

	tests := []struct {
		name      string
		studentID uuid.UUID
		subject   string
		marks     float64
		wantErr   error
	}{
		{"unknown student", uuid.New(), "Math", 50, service.ErrStudentNotFound},
		{"teacher as target", teacher.ID, "Math", 50, service.ErrStudentNotFound},
		{"negative marks", student.ID, "Math", -1, service.ErrInvalidMarks},
		{"marks above 100", student.ID, "Math", 100.1, service.ErrInvalidMarks},
		{"blank subject", student.ID, "   ", 50, service.ErrSubjectRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.RecordResult(db, teacher.ID, tt.studentID, tt.subject, tt.marks)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordResult() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if n := countResults(t, db); n != 0 {
		t.Errorf("rejected writes left %d rows", n)
	}
}

// A competing writer inserts the same (student, subject) between our lookup
// and our insert. The unique index turns our insert into a duplicate-key
// failure and the engine must fall back to overwriting the winner's row.
func TestRecordResult_LostInsertRace(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "Ms Rani", "rani@example.com", constants.RoleTeacher)
	rival := seedUser(t, db, "Mr Adi", "adi@example.com", constants.RoleTeacher)
	student := seedUser(t, db, "Budi", "budi@example.com", constants.RoleStudent)

	fired := false
	err := db.Callback().Create().Before("gorm:create").Register("test:race_insert", func(tx *gorm.DB) {
		if fired {
			return
		}
		if _, ok := tx.Statement.Model.(*model.ResultModel); !ok {
			return
		}
		fired = true
		rivalRow := &model.ResultModel{
			StudentID: student.ID,
			Subject:   "Math",
			Marks:     40,
			Grade:     "C",
			TeacherID: rival.ID,
		}
		if cerr := db.Session(&gorm.Session{NewDB: true}).Create(rivalRow).Error; cerr != nil {
			t.Errorf("rival insert: %v", cerr)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	got, created, err := service.RecordResult(db, teacher.ID, student.ID, "Math", 88)
	if err != nil {
		t.Fatalf("RecordResult() after lost race error = %v", err)
	}
	if !fired {
		t.Fatal("race callback never fired")
	}
	if created {
		t.Error("lost race must resolve as an update, not a create")
	}
	if got.Marks != 88 || got.Grade != "A" {
		t.Errorf("got marks=%v grade=%q, want 88 A", got.Marks, got.Grade)
	}
	if got.TeacherID != teacher.ID {
		t.Error("retry must stamp the caller, not the rival")
	}
	if n := countResults(t, db); n != 1 {
		t.Errorf("result count = %d, want 1", n)
	}
}

func TestUpdateResult(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "Ms Rani", "rani@example.com", constants.RoleTeacher)
	teacher2 := seedUser(t, db, "Mr Adi", "adi@example.com", constants.RoleTeacher)
	student := seedUser(t, db, "Budi", "budi@example.com", constants.RoleStudent)

	math, _, err := service.RecordResult(db, teacher.ID, student.ID, "Math", 45)
	if err != nil {
		t.Fatalf("seed math result: %v", err)
	}
	if _, _, err := service.RecordResult(db, teacher.ID, student.ID, "Physics", 60); err != nil {
		t.Fatalf("seed physics result: %v", err)
	}

	t.Run("unknown id", func(t *testing.T) {
		if _, err := service.UpdateResult(db, teacher.ID, uuid.New(), 50, nil); !errors.Is(err, service.ErrResultNotFound) {
			t.Errorf("error = %v, want %v", err, service.ErrResultNotFound)
		}
	})

	t.Run("invalid marks", func(t *testing.T) {
		if _, err := service.UpdateResult(db, teacher.ID, math.ID, 101, nil); !errors.Is(err, service.ErrInvalidMarks) {
			t.Errorf("error = %v, want %v", err, service.ErrInvalidMarks)
		}
	})

	t.Run("subject collides with sibling", func(t *testing.T) {
		subject := "Physics"
		if _, err := service.UpdateResult(db, teacher.ID, math.ID, 50, &subject); !errors.Is(err, service.ErrResultConflict) {
			t.Errorf("error = %v, want %v", err, service.ErrResultConflict)
		}
	})

	t.Run("marks edit re-derives grade and teacher", func(t *testing.T) {
		got, err := service.UpdateResult(db, teacher2.ID, math.ID, 72, nil)
		if err != nil {
			t.Fatalf("UpdateResult() error = %v", err)
		}
		if got.Grade != "B+" {
			t.Errorf("grade = %q, want B+", got.Grade)
		}
		if got.Subject != "Math" {
			t.Errorf("subject = %q, want Math (unchanged)", got.Subject)
		}
		if got.TeacherID != teacher2.ID {
			t.Error("edit must re-stamp the recording teacher")
		}
	})

	t.Run("subject rename to a free key", func(t *testing.T) {
		subject := "Chemistry"
		got, err := service.UpdateResult(db, teacher.ID, math.ID, 33, &subject)
		if err != nil {
			t.Fatalf("UpdateResult() error = %v", err)
		}
		if got.Subject != "Chemistry" || got.Grade != "D" {
			t.Errorf("got subject=%q grade=%q, want Chemistry D", got.Subject, got.Grade)
		}
	})
}

func TestDeleteResult(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "Ms Rani", "rani@example.com", constants.RoleTeacher)
	student := seedUser(t, db, "Budi", "budi@example.com", constants.RoleStudent)

	r, _, err := service.RecordResult(db, teacher.ID, student.ID, "Math", 45)
	if err != nil {
		t.Fatalf("seed result: %v", err)
	}

	if err := service.DeleteResult(db, r.ID); err != nil {
		t.Fatalf("DeleteResult() error = %v", err)
	}
	if n := countResults(t, db); n != 0 {
		t.Errorf("result count after delete = %d, want 0", n)
	}

	// deleting the same id again is not a silent no-op
	if err := service.DeleteResult(db, r.ID); !errors.Is(err, service.ErrResultNotFound) {
		t.Errorf("second delete error = %v, want %v", err, service.ErrResultNotFound)
	}
}
