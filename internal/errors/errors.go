package errors

import "errors"

var (
	// ErrNotFound is returned when a referenced row is absent or not owned
	// by the requesting user.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden is returned when an authenticated user lacks the
	// required permission.
	ErrForbidden = errors.New("permission denied")
	// ErrValidation is returned for malformed or missing input.
	ErrValidation = errors.New("invalid input")
	// ErrConflict is returned for duplicate unique values.
	ErrConflict = errors.New("resource already exists")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
