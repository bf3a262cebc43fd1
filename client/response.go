package client

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/techipro/konnect-admin/types"
)

// Request describes a single call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  map[string]string
	Header http.Header
	// Body is marshalled as JSON unless it is already a []byte or json.RawMessage
	Body interface{}
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON decodes the body into v
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// Message extracts a human-readable error message from the body,
// falling back to the status text
func (r *Response) Message() string {
	var parsed types.ErrorResponse
	if err := json.Unmarshal(r.Body, &parsed); err == nil {
		if text := strings.TrimSpace(parsed.Text()); text != "" {
			return text
		}
	}

	if text := http.StatusText(r.StatusCode); text != "" {
		return text
	}

	return "unknown error"
}

// Result is what a call produced. Response is nil for NoSession and
// Unauthorized: those responses must not be used by the caller.
type Result struct {
	Outcome   Outcome
	Response  *Response
	RequestID string
}
