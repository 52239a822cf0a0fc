// Package session is the client-local key/value store: serialized JSON for
// cart contents, the wishlist and the current user record, read on startup
// and written on every mutation. Writes are synchronous and best-effort —
// last writer wins, mirroring browser local storage.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
	KeyUser     = "user"
)

type Store struct {
	mu     sync.Mutex
	path   string // empty for in-memory stores
	values map[string]json.RawMessage
}

// Open loads the store backed by the given file, creating it lazily on the
// first write. A corrupt file is treated as empty rather than fatal.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]json.RawMessage)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			s.values = make(map[string]json.RawMessage)
		}
	}
	return s, nil
}

// NewMemory returns a store with no backing file.
func NewMemory() *Store {
	return &Store{values: make(map[string]json.RawMessage)}
}

// Get unmarshals the value under key into v. Returns false when the key is
// absent.
func (s *Store) Get(key string, v any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.values[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

// Put stores v under key and flushes immediately.
func (s *Store) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
	return s.flush()
}

// Delete removes key and flushes immediately. No-op if absent.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

// flush writes the whole map out. Callers hold s.mu.
func (s *Store) flush() error {
	if s.path == "" {
		return nil
	}
	data, err := json.Marshal(s.values)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
