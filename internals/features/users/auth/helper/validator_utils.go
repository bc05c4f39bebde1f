package helper

import (
	"errors"
	"regexp"
	"strings"

	"lms_backend/internals/constants"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidateRegisterInput mirrors the registration contract: all fields
// required, sane lengths, role whitelisted.
func ValidateRegisterInput(name, email, password, role string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" ||
		password == "" || strings.TrimSpace(role) == "" {
		return errors.New("All fields are required")
	}
	if len(strings.TrimSpace(name)) < 2 {
		return errors.New("Name must be at least 2 characters")
	}
	if !isValidEmail(strings.TrimSpace(email)) {
		return errors.New("Invalid email format")
	}
	if len(password) < 6 {
		return errors.New("Password must be at least 6 characters")
	}
	if !constants.ValidRole(role) {
		return errors.New("Invalid role")
	}
	return nil
}

func ValidateLoginInput(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return errors.New("Email and password are required")
	}
	return nil
}
