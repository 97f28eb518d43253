package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/budget/internal/config"
	"github.com/Veraticus/budget/internal/service"
)

// Open returns the storage backend selected by cfg, migrated and ready for use.
func Open(ctx context.Context, cfg *config.Config) (service.Storage, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return NewJSONStorage(cfg.DataPath)
	case config.BackendSQLite:
		store, err := NewSQLiteStorage(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
