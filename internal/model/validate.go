package model

import (
	"regexp"
	"strings"

	"reviewhub/internal/errors"
)

const (
	UsernameMaxLength = 150
	EmailMaxLength    = 254
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// ValidateUsername enforces the username contract: non-empty, bounded length,
// the allowed character set, and never "me" in any case.
func ValidateUsername(value string) error {
	if value == "" {
		return errors.NewValidation("username", "is required")
	}
	if len(value) > UsernameMaxLength {
		return errors.NewValidation("username", "must be at most 150 characters")
	}
	if !usernamePattern.MatchString(value) {
		return errors.NewValidation("username", "may contain only letters, digits and .@+-")
	}
	if strings.EqualFold(value, "me") {
		return errors.NewValidation("username", `"me" is not a valid username`)
	}
	return nil
}

// ValidateEmail enforces the email format and length contract.
func ValidateEmail(value string) error {
	if value == "" {
		return errors.NewValidation("email", "is required")
	}
	if len(value) > EmailMaxLength {
		return errors.NewValidation("email", "must be at most 254 characters")
	}
	if !emailPattern.MatchString(value) {
		return errors.NewValidation("email", "is not a valid email address")
	}
	return nil
}
