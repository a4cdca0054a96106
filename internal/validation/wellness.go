package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/auralis/auralis/internal/model"
)

var ErrNoEntryType = errors.New("category has no wellness entry type")

// ValidateEntryCategory accepts the categories that have their own check-in form.
func ValidateEntryCategory(category model.Category) error {
	if !category.HasEntries() {
		return fmt.Errorf("%w: %q", ErrNoEntryType, category)
	}
	return nil
}

// ValidateScore checks a 1 (very low) to 5 (very high) rating.
func ValidateScore(score int) error {
	if score < 1 || score > 5 {
		return errors.New("score must be between 1 and 5")
	}
	return nil
}

func ValidateSleepHours(hours *float64) error {
	if hours == nil {
		return errors.New("hours is required for sleep entries")
	}
	if *hours < 0 || *hours > 24 {
		return errors.New("hours must be between 0 and 24")
	}
	return nil
}

func ValidateNotes(notes string) error {
	if utf8.RuneCountInString(notes) > 500 {
		return errors.New("notes are too long (max 500 characters)")
	}
	return nil
}

func ValidateTags(tags []string) error {
	if len(tags) > 20 {
		return errors.New("too many tags (max 20)")
	}
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			return errors.New("tags must not be empty")
		}
		if utf8.RuneCountInString(trimmed) > 50 {
			return errors.New("tag is too long (max 50 characters)")
		}
	}
	return nil
}
