// internal/infrastructure/storage/storage.go
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store is the local key-value cache the client persists state into.
// Keys are plain strings (cart_<tableId>, the admin token key); values are
// serialized JSON or opaque strings. Last writer wins; there is no
// cross-process coordination.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
