package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/auralis/auralis/internal/model"
)

var (
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidTarget   = errors.New("target must be at least 1")
	ErrInvalidAmount   = errors.New("amount must be at least 1")
)

func ValidateGoalName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return errors.New("goal name is required")
	}

	if utf8.RuneCountInString(trimmed) > 100 {
		return errors.New("goal name is too long (max 100 characters)")
	}

	return nil
}

func ValidateCategory(category model.Category) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return nil
}

func ValidateTarget(target int) error {
	if target < 1 {
		return ErrInvalidTarget
	}
	return nil
}

// ValidateCurrent checks the starting progress a goal may be created with.
func ValidateCurrent(current int) error {
	if current < 0 {
		return errors.New("current must not be negative")
	}
	return nil
}

func ValidateUnit(unit string) error {
	if utf8.RuneCountInString(unit) > 32 {
		return errors.New("unit is too long (max 32 characters)")
	}
	return nil
}

func ValidateAmount(amount int) error {
	if amount < 1 {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateTimezone accepts an empty string (server default) or an IANA name.
func ValidateTimezone(tz string) error {
	if tz == "" {
		return nil
	}
	_, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("unknown timezone %q", tz)
	}
	return nil
}
