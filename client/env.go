package client

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/techipro/konnect-admin/env"
	"github.com/techipro/konnect-admin/session"
)

// DefaultBaseURL is the production API root
const DefaultBaseURL = "https://techiproconnect.onrender.com/api/v1"

// NewFromEnv creates a Client using the KONNECT_* environment variables
func NewFromEnv(sess *session.Session, navigator Navigator, indicator Indicator, logger *zerolog.Logger) (*Client, error) {
	opts := Options{
		BaseURL:    env.GetEnvOr("KONNECT_API_BASE_URL", DefaultBaseURL),
		HTTPClient: &http.Client{},
		Navigator:  navigator,
		Indicator:  indicator,
		Logger:     logger,
	}

	timeout, err := env.GetDurationEnv("request timeout", "KONNECT_REQUEST_TIMEOUT")
	switch {
	case err == nil:
		opts.HTTPClient.Timeout = timeout
	case !env.IsMissing(err):
		return nil, errors.Wrap(err, "load client configuration")
	}

	maxSize, err := env.GetBytesEnv("maximum response size", "KONNECT_MAX_RESPONSE_SIZE")
	switch {
	case err == nil:
		opts.MaxResponseBytes = int64(maxSize.Bytes())
	case !env.IsMissing(err):
		return nil, errors.Wrap(err, "load client configuration")
	}

	return New(sess, opts)
}
