package validation

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// MaxMapValueLength bounds socialLinks and customConfig values.
const MaxMapValueLength = 255

// NormalizeLink trims the link; blank input means "no link" and returns nil.
// Anything else must be an absolute http(s) URL.
func NormalizeLink(link string) (*string, error) {
	trimmed := strings.TrimSpace(link)
	if trimmed == "" {
		return nil, nil
	}

	u, err := url.Parse(trimmed)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New("link must be a valid http(s) URL")
	}

	return &trimmed, nil
}

// ValidateStringMap checks every key against allowed and bounds every value.
// Values are trimmed in place. Blank values are dropped when dropBlank is set
// and rejected otherwise.
func ValidateStringMap(field string, m map[string]string, allowed []string, dropBlank bool) error {
	for key, value := range m {
		if !slices.Contains(allowed, key) {
			return fmt.Errorf("%s: unknown key %q", field, key)
		}

		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			if dropBlank {
				delete(m, key)
				continue
			}
			return fmt.Errorf("%s: %q must not be empty", field, key)
		}
		if len(trimmed) > MaxMapValueLength {
			return fmt.Errorf("%s: %q is too long (max %d characters)", field, key, MaxMapValueLength)
		}
		m[key] = trimmed
	}

	return nil
}
