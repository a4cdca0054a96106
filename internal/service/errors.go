package service

import (
	"errors"
	"fmt"

	"github.com/auralis/auralis/internal/repository"
	"github.com/auralis/auralis/internal/validation"
)

var (
	ErrInvalidCategory = validation.ErrInvalidCategory
	ErrInvalidTarget   = validation.ErrInvalidTarget
	ErrInvalidAmount   = validation.ErrInvalidAmount
	ErrUnknownUser     = errors.New("unknown user")

	ErrDuplicateGoal = repository.ErrDuplicateGoal
	ErrGoalNotFound  = repository.ErrGoalNotFound

	// ErrStorageUnavailable wraps any store failure that is not a domain outcome.
	ErrStorageUnavailable = errors.New("goal storage unavailable")
)

// ValidationError is returned for bad input before anything is written.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
