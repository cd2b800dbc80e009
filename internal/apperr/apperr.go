// Package apperr defines the error taxonomy shared by the kiosk domain
// packages and its mapping onto HTTP status codes.
package apperr

import (
	"errors"
	"net/http"
)

// Error classes. Domain sentinels wrap one of these so callers can branch
// with errors.Is without knowing every concrete error.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Error is a classified error with a user-facing message.
type Error struct {
	kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is reports whether target is the class of e.
func (e *Error) Is(target error) bool { return target == e.kind }

// Validation returns a new ValidationError with msg.
func Validation(msg string) *Error {
	return &Error{kind: ErrValidation, Message: msg}
}

// NotFound returns a new NotFound error with msg.
func NotFound(msg string) *Error {
	return &Error{kind: ErrNotFound, Message: msg}
}

// InvalidTransition returns a new InvalidTransition error with msg.
func InvalidTransition(msg string) *Error {
	return &Error{kind: ErrInvalidTransition, Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvalidTransition reports whether err is an InvalidTransition error.
func IsInvalidTransition(err error) bool { return errors.Is(err, ErrInvalidTransition) }

// HTTPStatus maps err onto the status code the handlers respond with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsInvalidTransition(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
