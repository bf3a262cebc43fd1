package session

import (
	"context"
	"errors"
	"testing"
)

type failingStore struct{ err error }

func (f failingStore) Load(ctx context.Context) (string, error)     { return "", f.err }
func (f failingStore) Save(ctx context.Context, token string) error { return f.err }
func (f failingStore) Clear(ctx context.Context) error              { return f.err }

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	sess := New(NewMemoryStore())

	state, err := sess.State(ctx)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state != NoSession {
		t.Fatalf("expected no_session, got %s", state)
	}

	if err := sess.Login(ctx, "  abc123 "); err != nil {
		t.Fatalf("login: %v", err)
	}
	token, ok, err := sess.Token(ctx)
	if err != nil || !ok {
		t.Fatalf("expected token, got ok=%v err=%v", ok, err)
	}
	if token != "abc123" {
		t.Fatalf("expected trimmed token, got %q", token)
	}
	if state, _ := sess.State(ctx); state != Valid {
		t.Fatalf("expected valid, got %s", state)
	}

	if err := sess.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, ok, _ := sess.Token(ctx); ok {
		t.Fatalf("expected token to be cleared")
	}
}

func TestSessionLoginReplacesToken(t *testing.T) {
	ctx := context.Background()
	sess := New(NewMemoryStore())

	if err := sess.Login(ctx, "first"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := sess.Login(ctx, "second"); err != nil {
		t.Fatalf("login: %v", err)
	}

	token, _, _ := sess.Token(ctx)
	if token != "second" {
		t.Fatalf("expected only the latest token to be held, got %q", token)
	}
}

func TestSessionLoginRejectsBlankToken(t *testing.T) {
	sess := New(NewMemoryStore())
	if err := sess.Login(context.Background(), "   "); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
}

func TestSessionStoreFailureIsNotNoSession(t *testing.T) {
	boom := errors.New("backend down")
	sess := New(failingStore{err: boom})

	_, ok, err := sess.Token(context.Background())
	if ok {
		t.Fatalf("expected no token")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{NoSession: "no_session", Valid: "valid", Rejected: "rejected", State(9): "unknown"}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Fatalf("state %d: expected %q, got %q", state, want, got)
		}
	}
}
