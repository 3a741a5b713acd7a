package services

import (
	"errors"

	apperrors "github.com/musicraft-academy/aptitude-service/internal/errors"
	"github.com/musicraft-academy/aptitude-service/internal/session"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Attempt specific errors
	ErrAttemptNotFound   = session.ErrAttemptNotFound
	ErrNoActiveAttempt   = session.ErrNoActiveAttempt
	ErrAttemptCompleted  = session.ErrAttemptCompleted
	ErrUnknownItem       = errors.New("item not found in bank")
	ErrSectionOutOfRange = errors.New("section index out of range")
)

// Shared error types from the errors package.
type ConfigError = apperrors.ConfigError
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a validation error using the shared type.
func NewValidationError(field, message string, value any) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if err represents a "not found" condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAttemptNotFound) || errors.Is(err, ErrUnknownItem)
}

// IsValidation checks if err represents a validation failure.
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}

// IsConfig checks if err represents an engine/configuration mismatch.
func IsConfig(err error) bool {
	return apperrors.IsConfigError(err)
}

// IsConflict checks if err represents an invalid lifecycle transition.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAttemptCompleted) || errors.Is(err, ErrNoActiveAttempt)
}
