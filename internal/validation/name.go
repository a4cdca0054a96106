package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ValidateName checks the display name used in notification emails.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return errors.New("name is required")
	}

	if utf8.RuneCountInString(trimmed) > 100 {
		return errors.New("name is too long (max 100 characters)")
	}

	return nil
}
