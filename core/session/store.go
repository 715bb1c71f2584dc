package session

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

type memStore struct {
	mux     sync.RWMutex
	entries map[string]string
}

// NewMemStore returns an in-memory Store. Useful for tests and for
// server-side request scopes where nothing should outlive the process.
func NewMemStore() Store {
	return &memStore{entries: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	val, ok := s.entries[key]
	return val, ok
}

func (s *memStore) Set(key, value string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.entries[key] = value
	return nil
}

func (s *memStore) Delete(key string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.entries, key)
	return nil
}

type fileStore struct {
	dir string
}

// NewFileStore persists each entry as its own file under dir,
// so entries can be set and cleared independently.
// Used by the admin CLI to cache its login between runs.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrap(err, "creating session dir")
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *fileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (s *fileStore) Set(key, value string) error {
	return os.WriteFile(s.path(key), []byte(value), 0600)
}

func (s *fileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
