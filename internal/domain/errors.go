package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownValidator  = errors.New("unknown validator")
	ErrPersistence       = errors.New("validation job could not be recorded")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// InputError reports a missing or malformed field on an incoming request.
type InputError struct {
	Field  string
	Reason string
}

// NewInputError creates an InputError for field.
func NewInputError(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) match any InputError.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
