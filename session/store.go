package session

import (
	"context"
	"errors"
	"sync"
)

// DefaultStorageKey is the fixed key the token is stored under
const DefaultStorageKey = "admin_token"

// ErrNoToken is returned by Store.Load when no token is stored
var ErrNoToken = errors.New("no session token stored")

// Store persists a single bearer token under a fixed key.
// Implementations must treat a blank stored value as absent.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the token in process memory.
// Safe for concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored token or ErrNoToken
func (m *MemoryStore) Load(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" {
		return "", ErrNoToken
	}

	return m.token, nil
}

// Save replaces the stored token
func (m *MemoryStore) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
	return nil
}

// Clear removes the stored token
func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	return nil
}
