// Package apperrors defines the error taxonomy of the contact book: a
// request either failed because of the caller's data (validation), because
// the referenced contact does not exist (not found), or because of the
// infrastructure underneath. The HTTP layer maps these once to status codes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// NotFoundError signals that a referenced contact id has no matching record.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ValidationError signals that caller-supplied data broke a business rule.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewNotFound builds a NotFoundError with a formatted message.
func NewNotFound(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// NewValidation builds a ValidationError with a formatted message.
func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StatusCode determines the HTTP status code for an error. Anything that is
// neither a validation nor a not-found failure counts as infrastructure.
func StatusCode(err error) int {
	var notFound *NotFoundError
	var validation *ValidationError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
