package validation

import (
	"errors"
)

const (
	PasswordMinLength = 6
	// bcrypt silently truncates passwords longer than 72 bytes
	PasswordMaxLength = 72
)

// ValidatePassword checks the password length in bytes.
func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return errors.New("password must be at least 6 characters")
	}

	if len(password) > PasswordMaxLength {
		return errors.New("password must not exceed 72 bytes")
	}

	return nil
}
