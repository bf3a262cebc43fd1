package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// TransportError wraps a fault that prevented an HTTP response from being received
type TransportError struct {
	Method string
	Path   string
	Err    error
}

// NewTransportError constructs a new TransportError
func NewTransportError(method string, path string, err error) *TransportError {
	return &TransportError{
		Method: method,
		Path:   path,
		Err:    err,
	}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Err)
}

// Unwrap exposes the underlying network error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err came from a transport-level fault
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// ResponseTooLargeError is returned when a body exceeds the configured cap
type ResponseTooLargeError struct {
	Path  string
	Limit int64
}

// NewResponseTooLargeError constructs a new ResponseTooLargeError
func NewResponseTooLargeError(path string, limit int64) *ResponseTooLargeError {
	return &ResponseTooLargeError{
		Path:  path,
		Limit: limit,
	}
}

func (e *ResponseTooLargeError) Error() string {
	return fmt.Sprintf("response from %s exceeds the %d byte limit", e.Path, e.Limit)
}
