// Package errors holds error types shared between the scoring engine and the
// service layer.
package errors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ConfigError signals an engine/configuration mismatch, such as a score
// request for a section id that the item bank does not define. These are
// programming-time invariant violations and must surface loudly, never as a
// silently zeroed score.
type ConfigError struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (ce *ConfigError) Error() string {
	return fmt.Sprintf("configuration error (%s): %s", ce.Subject, ce.Message)
}

// NewConfigError creates a configuration error for the given subject.
func NewConfigError(subject, format string, args ...any) *ConfigError {
	return &ConfigError{Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
	Rule    string `json:"rule,omitempty"`
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, value any) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// ToValidationErrors converts validator.ValidationErrors to our type.
func ToValidationErrors(err error) ValidationErrors {
	var out ValidationErrors
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out = append(out, ValidationError{
				Field:   fe.Field(),
				Message: fieldErrorMessage(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
	}
	return out
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "item_type":
		return "must be a valid item type"
	case "band":
		return "must be a valid band (A, B or C)"
	case "recommended_level":
		return "must be a valid recommended level"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
