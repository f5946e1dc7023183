package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateUsername validates a trimmed username: 2-50 characters, no control characters.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}

	n := utf8.RuneCountInString(username)
	if n < 2 {
		return errors.New("username must be at least 2 characters")
	}
	if n > 50 {
		return errors.New("username is too long (max 50 characters)")
	}

	if strings.IndexFunc(username, unicode.IsControl) >= 0 {
		return errors.New("username contains invalid characters")
	}

	return nil
}

// ValidateTitle validates a required title of at most max characters.
func ValidateTitle(field, title string, max int) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return fmt.Errorf("%s is required", field)
	}

	if utf8.RuneCountInString(trimmed) > max {
		return fmt.Errorf("%s is too long (max %d characters)", field, max)
	}

	return nil
}
