package admin

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned when a call was refused locally because no token is stored
var ErrNoSession = errors.New("not signed in: no session token is stored")

// ErrSessionInvalid is returned when the API rejected the stored token.
// The token has already been cleared by the time this is seen.
var ErrSessionInvalid = errors.New("session rejected by the API: sign in again")

// AccessDeniedError is returned for 403 responses. The session is kept.
type AccessDeniedError struct {
	Path    string
	Message string
}

// NewAccessDeniedError constructs a new AccessDeniedError
func NewAccessDeniedError(path string, message string) *AccessDeniedError {
	return &AccessDeniedError{
		Path:    path,
		Message: message,
	}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied for '%s': %s", e.Path, e.Message)
}

// APIError is an application-level failure: any non-2xx status
// other than 401 and 403
type APIError struct {
	Path       string
	StatusCode int
	Message    string
}

// NewAPIError constructs a new APIError
func NewAPIError(path string, statusCode int, message string) *APIError {
	return &APIError{
		Path:       path,
		StatusCode: statusCode,
		Message:    message,
	}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("'%s' failed with status %d: %s", e.Path, e.StatusCode, e.Message)
}

// ShapeError is returned when a successful response does not match
// the schema expected for its endpoint
type ShapeError struct {
	Path  string
	Field string
	Err   error
}

// NewShapeError constructs a new ShapeError
func NewShapeError(path string, field string, err error) *ShapeError {
	return &ShapeError{
		Path:  path,
		Field: field,
		Err:   err,
	}
}

func (e *ShapeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("unexpected response shape from '%s': required field '%s' is missing",
			e.Path, e.Field)
	}

	return fmt.Sprintf("unexpected response shape from '%s': %s", e.Path, e.Err)
}

// Unwrap exposes the decoding error, if any
func (e *ShapeError) Unwrap() error {
	return e.Err
}

// ValidationError is returned before any call is made when the
// caller's input cannot be sent
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError constructs a new ValidationError
func NewValidationError(field string, reason string) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: reason,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError is returned by lookups that scan a listing client-side
type NotFoundError struct {
	Kind string
	ID   string
}

// NewNotFoundError constructs a new NotFoundError
func NewNotFoundError(kind string, id string) *NotFoundError {
	return &NotFoundError{
		Kind: kind,
		ID:   id,
	}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with identifier '%s' not found", e.Kind, e.ID)
}
