// Package admin exposes one typed method per admin API endpoint.
//
// Every method goes through the session-guarded client and turns its
// outcome into either a decoded value or one of the errors in errors.go.
// Responses are decoded strictly: a listing without its collection field
// is a ShapeError, never an empty list.
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/techipro/konnect-admin/client"
	"github.com/techipro/konnect-admin/types"
)

// Pagination defaults
const (
	DefaultPage         = 1
	DefaultLimit        = 10
	DefaultPendingLimit = 20
	// PendingScanLimit bounds FindPendingTechnician
	PendingScanLimit = 100
	// MinSearchLength is the shortest search term forwarded to the API
	MinSearchLength = 2
	// DefaultPeriod is used by the analytics endpoints
	DefaultPeriod = "30d"
)

// Doer performs a single session-guarded call; *client.Client implements it
type Doer interface {
	Do(ctx context.Context, req client.Request) (*client.Result, error)
}

// Service is the typed admin API surface
type Service struct {
	api Doer
}

// New creates a Service on top of the given client
func New(api Doer) *Service {
	return &Service{api: api}
}

// call performs req and decodes a successful body into out (if non-nil)
func (s *Service) call(ctx context.Context, req client.Request, out interface{}) error {
	result, err := s.api.Do(ctx, req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", methodOf(req), req.Path)
	}

	switch result.Outcome {
	case client.NoSession:
		return ErrNoSession
	case client.Unauthorized:
		return ErrSessionInvalid
	case client.Forbidden:
		return NewAccessDeniedError(req.Path, result.Response.Message())
	case client.Failed:
		return NewAPIError(req.Path, result.Response.StatusCode, result.Response.Message())
	}

	if out == nil {
		return nil
	}

	return decode(req.Path, result.Response.Body, out)
}

func decode(path string, body []byte, out interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return NewShapeError(path, "", errors.New("empty response body"))
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return NewShapeError(path, "", err)
	}

	if envelope, ok := out.(types.Envelope); ok {
		if field := envelope.MissingField(); field != "" {
			return NewShapeError(path, field, nil)
		}
	}

	return nil
}

func methodOf(req client.Request) string {
	if req.Method == "" {
		return http.MethodGet
	}

	return req.Method
}

// segment escapes a caller-supplied identifier for use in a path
func segment(field string, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", NewValidationError(field, "cannot be empty")
	}

	return url.PathEscape(id), nil
}

func pageParams(page int, limit int, defaultLimit int) map[string]string {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	return map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	}
}

// normalizeSearch returns the term to send, or "" if it is too short to forward
func normalizeSearch(term string) string {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < MinSearchLength {
		return ""
	}

	return term
}

func setIf(params map[string]string, key string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		params[key] = value
	}
}
