package constants

import "fmt"

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Template error messages for role gates
const (
	ErrOnlyTeachersCanAccess = "Only teachers may access %s."
	ErrOnlyStudentsCanAccess = "Only students may access %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleTeacher,
		RoleStudent,
	}

	TeacherOnly = []string{
		RoleTeacher,
	}

	StudentOnly = []string{
		RoleStudent,
	}
)

// ValidRole reports whether s is a registrable role.
func ValidRole(s string) bool {
	for _, r := range AllRoles {
		if s == r {
			return true
		}
	}
	return false
}
