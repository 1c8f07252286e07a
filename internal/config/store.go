package config

import (
	"fmt"
	"sync"
)

// PreferenceStore is a small string key/value store for user preferences.
type PreferenceStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// FileStore is a PreferenceStore backed by the YAML registry. Every Set is
// written through to disk.
type FileStore struct {
	mu       sync.Mutex
	registry *Registry
}

// OpenFileStore loads the registry at path ("" for the default location).
func OpenFileStore(path string) (*FileStore, error) {
	registry, err := LoadRegistry(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{registry: registry}, nil
}

// Get returns the stored value for key.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Get(key)
}

// Set stores value under key and saves the registry.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registry.Set(key, value)
	if err := s.registry.Save(); err != nil {
		return fmt.Errorf("failed to persist preference %q: %w", key, err)
	}
	return nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.registry.Path()
}

// MemoryStore is an in-process PreferenceStore. It is used when no file
// store can be opened and in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
