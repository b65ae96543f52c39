// internal/infrastructure/storage/memory/memory.go
package memory

import (
	"context"
	"sync"

	"github.com/your-org/tableside/internal/infrastructure/storage"
)

// Store is an in-process storage.Store. Used in tests and as a fallback when
// no durable cache is configured; contents do not survive a restart.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		values: make(map[string]string),
	}
}

// Get retrieves a value by key
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

// Set stores a key-value pair
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Delete removes a key
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
