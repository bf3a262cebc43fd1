package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/techipro/konnect-admin/env"
)

// Store backends selectable through KONNECT_TOKEN_STORE
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// NewStoreFromEnv builds the token store described by the environment.
// The caller owns the store and should close it if it implements io.Closer.
func NewStoreFromEnv() (Store, error) {
	key := env.GetEnvOr("KONNECT_STORAGE_KEY", DefaultStorageKey)
	backend := strings.ToLower(env.GetEnvOr("KONNECT_TOKEN_STORE", BackendFile))

	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		redisURL, err := env.GetEnv("token store Redis URL", "KONNECT_REDIS_URL")
		if err != nil {
			return nil, err
		}
		prefix := env.GetEnvOr("KONNECT_REDIS_PREFIX", "konnect")
		return NewRedisStoreFromURL(redisURL, prefix, key)
	case BackendFile:
		path := env.GetEnvOr("KONNECT_TOKEN_FILE", "")
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, errors.Wrap(err, "locate home directory for session file")
			}
			path = filepath.Join(home, ".konnect-admin", "session.yaml")
		}
		return NewFileStore(path, key), nil
	default:
		return nil, errors.Errorf("unknown token store %q (one of 'file', 'redis', 'memory')", backend)
	}
}
