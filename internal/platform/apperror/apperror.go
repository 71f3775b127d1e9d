// Package apperror defines the error taxonomy shared by all domain services.
// Services fail fast with the specific kind before touching storage; the
// repositories surface ErrConstraint for anything the service layer did not
// pre-validate. Handlers map kinds to HTTP statuses with errors.Is.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound: the operation references a key absent from storage.
	ErrNotFound = errors.New("not found")
	// ErrValidation: missing required field or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrConstraint: FK target missing or uniqueness violated at the store.
	ErrConstraint = errors.New("constraint violation")
	// ErrUnauthorized: the operation requires an identity, none present.
	ErrUnauthorized = errors.New("unauthorized")
)

// NotFound wraps ErrNotFound with a description of the missing entity.
func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Validation wraps ErrValidation with the failing field or rule.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Constraint wraps ErrConstraint with the violated relation.
func Constraint(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConstraint, fmt.Sprintf(format, args...))
}

// Unauthorized wraps ErrUnauthorized.
func Unauthorized(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

// HTTPStatus maps an error kind to the status a handler should respond with.
// Unrecognized errors are internal failures.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConstraint):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
