package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/techipro/konnect-admin/session"
)

// DefaultMaxResponseBytes caps response bodies when no limit is configured
const DefaultMaxResponseBytes int64 = 10 << 20

// Navigator sends the user to the login entry point
type Navigator interface {
	RedirectToLogin(reason Outcome)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(reason Outcome)

// RedirectToLogin calls f(reason)
func (f NavigatorFunc) RedirectToLogin(reason Outcome) {
	f(reason)
}

// Indicator raises the one-shot access-denied notice
type Indicator interface {
	ShowAccessDenied(path string)
}

// IndicatorFunc adapts a function to Indicator
type IndicatorFunc func(path string)

// ShowAccessDenied calls f(path)
func (f IndicatorFunc) ShowAccessDenied(path string) {
	f(path)
}

// Options configures a Client
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Navigator  Navigator
	Indicator  Indicator
	Logger     *zerolog.Logger
	// MaxResponseBytes of zero or less uses DefaultMaxResponseBytes
	MaxResponseBytes int64
}

// Client issues session-guarded calls. It is safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	session   *session.Session
	navigator Navigator
	indicator Indicator
	logger    zerolog.Logger
	maxBytes  int64
}

// New creates a Client for the given session
func New(sess *session.Session, opts Options) (*Client, error) {
	if sess == nil {
		return nil, errors.New("client requires a session")
	}

	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "parse base URL %q", opts.BaseURL)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, errors.Errorf("base URL %q must be absolute", opts.BaseURL)
	}

	c := &Client{
		base:      base,
		http:      opts.HTTPClient,
		session:   sess,
		navigator: opts.Navigator,
		indicator: opts.Indicator,
		logger:    zerolog.Nop(),
		maxBytes:  opts.MaxResponseBytes,
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.navigator == nil {
		c.navigator = NavigatorFunc(func(Outcome) {})
	}
	if c.indicator == nil {
		c.indicator = IndicatorFunc(func(string) {})
	}
	if opts.Logger != nil {
		c.logger = *opts.Logger
	}
	if c.maxBytes <= 0 {
		c.maxBytes = DefaultMaxResponseBytes
	}

	return c, nil
}

// BaseURL returns the API root every path is resolved against
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Session returns the session the client acts for
func (c *Client) Session() *session.Session {
	return c.session
}

// Do performs a call. A missing token short-circuits without touching the
// network. The returned error is only set for build, store or transport
// faults; every HTTP status is reported through Result.Outcome.
func (c *Client) Do(ctx context.Context, req Request) (*Result, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	token, ok, err := c.session.Token(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		decision := Decide(Classify(false, 0))
		c.logger.Debug().
			Str("method", req.Method).
			Str("path", req.Path).
			Msg("no session token, call not issued")
		c.apply(ctx, decision, req.Path)
		return &Result{Outcome: decision.Outcome}, nil
	}

	httpReq, requestID, err := c.build(ctx, req, token)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("method", req.Method).
			Str("path", req.Path).
			Str("request_id", requestID).
			Msg("API call failed in transport")
		return nil, NewTransportError(req.Method, req.Path, err)
	}
	defer res.Body.Close()

	decision := Decide(Classify(true, res.StatusCode))
	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Str("request_id", requestID).
		Int("status", res.StatusCode).
		Str("outcome", decision.Outcome.String()).
		Dur("elapsed", time.Since(start)).
		Msg("API call completed")

	c.apply(ctx, decision, req.Path)

	result := &Result{Outcome: decision.Outcome, RequestID: requestID}
	if !decision.ReturnResponse {
		return result, nil
	}

	body, err := c.readBody(res.Body, req)
	if err != nil {
		return nil, err
	}

	result.Response = &Response{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       body,
	}
	return result, nil
}

func (c *Client) apply(ctx context.Context, decision Decision, path string) {
	if decision.ClearToken {
		if err := c.session.Invalidate(ctx); err != nil {
			c.logger.Error().Err(err).Msg("could not clear rejected session token")
		}
	}
	if decision.Redirect {
		c.navigator.RedirectToLogin(decision.Outcome)
	}
	if decision.ShowAccessDenied {
		c.indicator.ShowAccessDenied(path)
	}
}

func (c *Client) build(ctx context.Context, req Request, token string) (*http.Request, string, error) {
	target, err := c.resolve(req)
	if err != nil {
		return nil, "", err
	}

	var body io.Reader
	switch raw := req.Body.(type) {
	case nil:
	case []byte:
		body = bytes.NewReader(raw)
	case json.RawMessage:
		body = bytes.NewReader(raw)
	default:
		encoded, err := json.Marshal(raw)
		if err != nil {
			return nil, "", errors.Wrapf(err, "encode body for %s %s", req.Method, req.Path)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, "", errors.Wrapf(err, "build request for %s %s", req.Method, req.Path)
	}

	httpReq.Header = MergeHeaders(token, req.Header)
	requestID := httpReq.Header.Get(HeaderRequestID)
	if requestID == "" {
		requestID = ksuid.New().String()
		httpReq.Header.Set(HeaderRequestID, requestID)
	}

	return httpReq, requestID, nil
}

func (c *Client) resolve(req Request) (string, error) {
	path := req.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	target, err := url.Parse(c.base.String() + path)
	if err != nil {
		return "", errors.Wrapf(err, "parse path %q", req.Path)
	}

	if len(req.Query) > 0 {
		query := target.Query()
		for key, value := range req.Query {
			query.Set(key, value)
		}
		target.RawQuery = query.Encode()
	}

	return target.String(), nil
}

func (c *Client) readBody(body io.Reader, req Request) ([]byte, error) {
	data, err := ioutil.ReadAll(io.LimitReader(body, c.maxBytes+1))
	if err != nil {
		return nil, NewTransportError(req.Method, req.Path, err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, NewResponseTooLargeError(req.Path, c.maxBytes)
	}

	return data, nil
}
