// Package apperr defines the error taxonomy shared by services, handlers and
// the API client. Errors carry their kind as a wrapped sentinel so layers can
// classify with errors.Is without string matching.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a uniqueness violation (duplicate email).
	ErrConflict = errors.New("conflict")
	// ErrAuth indicates a missing/invalid/expired token or bad credentials.
	ErrAuth = errors.New("unauthorized")
	// ErrForbidden indicates an authenticated caller who is not the owner.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates no such resource.
	ErrNotFound = errors.New("not found")
)

type wrapped struct {
	kind error
	msg  string
}

func (e *wrapped) Error() string { return e.msg }
func (e *wrapped) Unwrap() error { return e.kind }

// E attaches a user-facing message to a kind sentinel. Error() returns only
// the message; the kind stays reachable through errors.Is.
func E(kind error, msg string) error {
	return &wrapped{kind: kind, msg: msg}
}

// Status maps an error to the HTTP status its kind dictates. Unclassified
// errors are internal failures.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus converts an HTTP status back to its kind sentinel. The client
// uses it to classify envelope errors; unknown statuses map to nil.
func FromStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusUnauthorized:
		return ErrAuth
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}
