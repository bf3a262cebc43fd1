package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileStore keeps the token in a small YAML document on disk,
// keyed by the storage key so other keys in the file survive.
type FileStore struct {
	mu   sync.Mutex
	path string
	key  string
}

// NewFileStore creates a FileStore at path using the given storage key
func NewFileStore(path string, key string) *FileStore {
	if key == "" {
		key = DefaultStorageKey
	}

	return &FileStore{path: path, key: key}
}

// Path returns the location of the backing file
func (f *FileStore) Path() string {
	return f.path
}

// Load returns the stored token or ErrNoToken.
// A missing file is the same as no token.
func (f *FileStore) Load(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", err
	}

	token := strings.TrimSpace(values[f.key])
	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// Save writes the token, replacing any previous value
func (f *FileStore) Save(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}

	values[f.key] = token
	return f.write(values)
}

// Clear removes the token; other keys in the file are kept
func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := values[f.key]; !ok {
		return nil
	}

	delete(values, f.key)
	return f.write(values)
}

func (f *FileStore) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read session file %s", f.path)
	}

	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrapf(err, "parse session file %s", f.path)
	}
	if values == nil {
		values = make(map[string]string)
	}

	return values, nil
}

// write replaces the file via a rename so readers never see a partial document
func (f *FileStore) write(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "encode session file")
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrapf(err, "create session directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.yaml")
	if err != nil {
		return errors.Wrap(err, "create temporary session file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temporary session file")
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "chmod temporary session file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temporary session file")
	}

	return errors.Wrapf(os.Rename(tmp.Name(), f.path), "replace session file %s", f.path)
}
