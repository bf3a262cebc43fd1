package session

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the token under a single Redis string key,
// so several console hosts can share one administrator session.
type RedisStore struct {
	rdb redis.UniversalClient
	key string
}

// NewRedisStore creates a RedisStore storing the token at "<prefix>:<key>"
func NewRedisStore(rdb redis.UniversalClient, prefix string, key string) *RedisStore {
	if key == "" {
		key = DefaultStorageKey
	}
	if prefix != "" {
		key = prefix + ":" + key
	}

	return &RedisStore{rdb: rdb, key: key}
}

// NewRedisStoreFromURL parses a redis:// URL and connects lazily
func NewRedisStoreFromURL(rawURL string, prefix string, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis URL")
	}

	return NewRedisStore(redis.NewClient(opts), prefix, key), nil
}

// Key returns the full Redis key in use
func (r *RedisStore) Key() string {
	return r.key
}

// Load returns the stored token or ErrNoToken
func (r *RedisStore) Load(ctx context.Context) (string, error) {
	token, err := r.rdb.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return "", ErrNoToken
	}
	if err != nil {
		return "", errors.Wrap(err, "redis get session token")
	}

	if strings.TrimSpace(token) == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// Save replaces the stored token. No expiry is set: the console holds no
// expiry metadata, the API decides when a token stops working.
func (r *RedisStore) Save(ctx context.Context, token string) error {
	return errors.Wrap(r.rdb.Set(ctx, r.key, token, 0).Err(), "redis set session token")
}

// Clear removes the stored token; clearing an absent token is not an error
func (r *RedisStore) Clear(ctx context.Context) error {
	return errors.Wrap(r.rdb.Del(ctx, r.key).Err(), "redis del session token")
}

// Close releases the Redis connection pool
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
