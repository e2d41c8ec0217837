package service

import (
	"errors"
	"fmt"

	"productivity-manager/internal/repository"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrCooldownActive      = errors.New("profile cooldown active")
	ErrDuplicateCompletion = errors.New("already completed today")
	ErrTaskNotFound        = errors.New("task not found")
	ErrNoSession           = repository.ErrNoSession
)

// ValidationError describes a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// CooldownError is returned when a profile is saved before the cooldown ends.
type CooldownError struct {
	DaysRemaining int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("you can edit profile again in %d day(s)", e.DaysRemaining)
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}
