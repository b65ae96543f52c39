// cmd/client/storage.go
package main

import (
	"fmt"

	"github.com/your-org/tableside/internal/config"
	"github.com/your-org/tableside/internal/infrastructure/storage"
	"github.com/your-org/tableside/internal/infrastructure/storage/memory"
	"github.com/your-org/tableside/internal/infrastructure/storage/redis"
	"github.com/your-org/tableside/internal/infrastructure/storage/sqlite"
)

// openStorage opens the configured local key-value cache
func openStorage(cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "redis":
		store, err := redis.NewConnection(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Health(); err != nil {
			return nil, nil, fmt.Errorf("redis health check failed: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	case "sqlite":
		store, err := sqlite.NewConnection(cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case "memory":
		return memory.New(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
