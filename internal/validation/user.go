// Package validation holds field-level format checks shared by the
// signup and profile flows.
package validation

import (
	"fmt"
	"regexp"
)

// usernameRegex mirrors the classic Django username contract: letters,
// digits and @/./+/-/_ only.
var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

var reservedUsernames = map[string]struct{}{
	"me":      {},
	"admin":   {},
	"api":     {},
	"s":       {},
	"media":   {},
	"metrics": {},
}

const (
	maxUsernameLen = 150
	maxEmailLen    = 254
	maxNameLen     = 150
	minPasswordLen = 8
	maxPasswordLen = 128
)

// ValidateUsername validates username format and reserved names.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > maxUsernameLen {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLen)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may contain only letters, digits and @/./+/-/_ characters")
	}
	if _, exists := reservedUsernames[username]; exists {
		return fmt.Errorf("username is reserved")
	}
	return nil
}

// ValidateEmail checks length and a minimal shape; full RFC parsing is
// deliberately not attempted.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > maxEmailLen {
		return fmt.Errorf("email must be at most %d characters", maxEmailLen)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

// ValidateName bounds first/last name length.
func ValidateName(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(value) > maxNameLen {
		return fmt.Errorf("%s must be at most %d characters", field, maxNameLen)
	}
	return nil
}

// ValidatePassword enforces length bounds only; composition rules are
// left to the frontend.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLen)
	}
	return nil
}
