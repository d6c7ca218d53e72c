// Package apperrors defines the error taxonomy shared by the handlers and
// the order builder: validation, not-found, authorization and conflict.
// Handlers map each category to its HTTP status with Status.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

type NotFoundError struct{ msg string }

func (e *NotFoundError) Error() string { return e.msg }

type AuthorizationError struct{ msg string }

func (e *AuthorizationError) Error() string { return e.msg }

type ConflictError struct{ msg string }

func (e *ConflictError) Error() string { return e.msg }

func Validation(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

func Authorization(format string, args ...any) error {
	return &AuthorizationError{msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &ConflictError{msg: fmt.Sprintf(format, args...)}
}

// Status maps an error to its HTTP status code. Errors outside the taxonomy
// map to 500.
func Status(err error) int {
	var (
		ve *ValidationError
		nf *NotFoundError
		ae *AuthorizationError
		ce *ConflictError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ae):
		return http.StatusForbidden
	case errors.As(err, &ce):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
