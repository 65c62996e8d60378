package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("access forbidden")
	ErrUserExists        = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError reports a malformed or missing field. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
