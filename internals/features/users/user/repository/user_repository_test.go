package repository_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"lms_backend/internals/constants"
	"lms_backend/internals/features/users/user/model"
	"lms_backend/internals/features/users/user/repository"
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

	if err := db.AutoMigrate(&model.UserModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) *model.UserModel {
	t.Helper()
	pw := "x"
	u := &model.UserModel{UserName: name, Email: email, Password: &pw, Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return u
}

func TestFindStudents(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "Citra Lestari", "citra@example.com", constants.RoleStudent)
	seedUser(t, db, "Agus Wijaya", "agus@example.com", constants.RoleStudent)
	seedUser(t, db, "Budi Santoso", "budi@example.com", constants.RoleStudent)
	seedUser(t, db, "Ms Rani", "rani@example.com", constants.RoleTeacher)

	tests := []struct {
		name      string
		filter    repository.StudentFilter
		offset    int
		limit     int
		wantTotal int64
		wantNames []string
	}{
		{"all students, name ascending", repository.StudentFilter{}, 0, 10, 3, []string{"Agus Wijaya", "Budi Santoso", "Citra Lestari"}},
		{"teachers never listed", repository.StudentFilter{Search: "rani"}, 0, 10, 0, nil},
		{"case-insensitive name match", repository.StudentFilter{Search: "BUDI"}, 0, 10, 1, []string{"Budi Santoso"}},
		{"match against email too", repository.StudentFilter{Search: "citra@"}, 0, 10, 1, []string{"Citra Lestari"}},
		{"paging window", repository.StudentFilter{}, 1, 1, 3, []string{"Budi Santoso"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students, total, err := repository.FindStudents(db, tt.filter, tt.offset, tt.limit)
			if err != nil {
				t.Fatalf("FindStudents() error = %v", err)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if len(students) != len(tt.wantNames) {
				t.Fatalf("got %d rows, want %d", len(students), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if students[i].UserName != want {
					t.Errorf("row %d = %q, want %q", i, students[i].UserName, want)
				}
			}
		})
	}
}

func TestUpdateUserProfile(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "Budi Santoso", "budi@example.com", constants.RoleStudent)

	name := "Budi S."
	avatar := "https://cdn.example.com/budi.png"
	got, err := repository.UpdateUserProfile(db, u.ID, &name, &avatar)
	if err != nil {
		t.Fatalf("UpdateUserProfile() error = %v", err)
	}
	if got.UserName != "Budi S." {
		t.Errorf("user_name = %q, want Budi S.", got.UserName)
	}
	if got.Avatar == nil || *got.Avatar != avatar {
		t.Errorf("avatar = %v, want %q", got.Avatar, avatar)
	}
	if got.Email != "budi@example.com" || got.Role != constants.RoleStudent {
		t.Error("email and role must be untouched by a profile update")
	}

	// nil fields leave the stored values alone
	got, err = repository.UpdateUserProfile(db, u.ID, nil, nil)
	if err != nil {
		t.Fatalf("no-op update error = %v", err)
	}
	if got.UserName != "Budi S." {
		t.Errorf("user_name after no-op = %q, want Budi S.", got.UserName)
	}
}
