package session

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStoreTest(t *testing.T) (*RedisStore, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(rdb, "konnect", "")
	return store, mr, func() {
		rdb.Close()
		mr.Close()
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}

	if err := store.Save(ctx, "abc123"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, err := mr.Get("konnect:admin_token"); err != nil || got != "abc123" {
		t.Fatalf("expected token at fixed key, got %q (%v)", got, err)
	}
	if mr.TTL("konnect:admin_token") != 0 {
		t.Fatalf("expected no expiry on the token key")
	}

	token, err := store.Load(ctx)
	if err != nil || token != "abc123" {
		t.Fatalf("expected abc123, got %q (%v)", token, err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if mr.Exists("konnect:admin_token") {
		t.Fatalf("expected key to be deleted")
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestRedisStoreBackendDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	store := NewRedisStore(rdb, "konnect", "")
	mr.Close()

	_, err = store.Load(context.Background())
	if err == nil || errors.Is(err, ErrNoToken) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestRedisStoreFromURL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	defer mr.Close()

	store, err := NewRedisStoreFromURL("redis://"+mr.Addr()+"/0", "", "custom_key")
	if err != nil {
		t.Fatalf("from url: %v", err)
	}
	defer store.Close()

	if store.Key() != "custom_key" {
		t.Fatalf("expected bare key without prefix, got %q", store.Key())
	}
	if err := store.Save(context.Background(), "tok"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _ := mr.Get("custom_key"); got != "tok" {
		t.Fatalf("expected tok, got %q", got)
	}
}
