package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the outcome classes the API distinguishes.
// Services wrap these; the response layer maps them to HTTP statuses.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrDeclined     = errors.New("declined")
	ErrConflict     = errors.New("conflict")
)

type AppError struct {
	Err     error
	Message string
	Details any // optional: map[field]message for validation errors
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

func Validation(details any) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: "invalid payload",
		Details: details,
	}
}

func Unauthorized(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{Err: ErrUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Message: message}
}

// Declined marks a business rule rejection. Distinct from NotFound so the
// two no longer collapse into one 400 bucket.
func Declined(message string) *AppError {
	return &AppError{Err: ErrDeclined, Message: message}
}

func Conflict(resource, detail string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s already exists: %s", resource, detail),
	}
}
