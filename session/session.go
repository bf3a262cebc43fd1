package session

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// ErrEmptyToken is returned by Login when handed a blank token
var ErrEmptyToken = errors.New("session token cannot be empty")

// State is the validity of a session from the console's point of view
type State uint8

const (
	// NoSession means no token is stored; calls must not be issued
	NoSession State = iota
	// Valid means a token is stored and has not been rejected
	Valid
	// Rejected means the API answered 401 for the stored token.
	// The token is cleared immediately afterwards, so stores never report it.
	Rejected
)

func (s State) String() string {
	switch s {
	case NoSession:
		return "no_session"
	case Valid:
		return "valid"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Session wraps a Store with the lifecycle operations used by the console.
// Concurrent writers are not coordinated: the last write wins.
type Session struct {
	store Store
}

// New creates a Session backed by the given store
func New(store Store) *Session {
	return &Session{store: store}
}

// Store returns the underlying token store
func (s *Session) Store() Store {
	return s.store
}

// Token returns the stored token. ok is false when there is none;
// err is only set when the store itself failed.
func (s *Session) Token(ctx context.Context) (token string, ok bool, err error) {
	token, err = s.store.Load(ctx)
	if errors.Is(err, ErrNoToken) {
		return "", false, nil
	}
	if err != nil {
		return "", false, pkgerrors.Wrap(err, "load session token")
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false, nil
	}

	return token, true, nil
}

// State reports whether a token is currently held
func (s *Session) State(ctx context.Context) (State, error) {
	_, ok, err := s.Token(ctx)
	if err != nil {
		return NoSession, err
	}
	if !ok {
		return NoSession, nil
	}

	return Valid, nil
}

// Login stores a token obtained from an external sign-in flow,
// replacing any previous one
func (s *Session) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}

	return pkgerrors.Wrap(s.store.Save(ctx, token), "save session token")
}

// Logout removes the token at the user's request
func (s *Session) Logout(ctx context.Context) error {
	return pkgerrors.Wrap(s.store.Clear(ctx), "clear session token")
}

// Invalidate removes a token the API has rejected
func (s *Session) Invalidate(ctx context.Context) error {
	return pkgerrors.Wrap(s.store.Clear(ctx), "invalidate session token")
}
