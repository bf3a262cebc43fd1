package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	store := NewFileStore(path, "")

	if _, err := store.Load(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken for missing file, got %v", err)
	}

	if err := store.Save(ctx, "abc123"); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if token != "abc123" {
		t.Fatalf("expected abc123, got %q", token)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "admin_token: abc123") {
		t.Fatalf("expected token under the default key, got %q", data)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken after clear, got %v", err)
	}
}

func TestFileStoreKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte("theme: dark\n"), 0600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	store := NewFileStore(path, "admin_token")
	if err := store.Save(ctx, "abc123"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "theme: dark") {
		t.Fatalf("expected unrelated key to survive, got %q", data)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte("- not\n- a map\n"), 0600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	_, err := NewFileStore(path, "").Load(context.Background())
	if err == nil || errors.Is(err, ErrNoToken) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestFileStoreClearMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.yaml"), "")
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("clearing a missing file should be a no-op, got %v", err)
	}
}
