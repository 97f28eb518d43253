package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/budget/internal/config"
	"github.com/Veraticus/budget/internal/ledger"
	"github.com/Veraticus/budget/internal/service"
	"github.com/Veraticus/budget/internal/storage"
	"github.com/spf13/viper"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openLedger opens the configured backend and loads its data into a ledger.
// A missing data file yields an empty ledger.
func openLedger(ctx context.Context, cfg *config.Config) (service.Storage, *ledger.Ledger, error) {
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	data, err := store.Load(ctx)
	if err != nil {
		closeStorage(store)
		return nil, nil, fmt.Errorf("failed to load budget data: %w", err)
	}

	return store, ledger.New(data), nil
}

func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		slog.Warn("Failed to close storage", "error", err)
	}
}

// checkpointManager returns the manager for the JSON data file. SQLite
// databases are backed up with the database's own tooling instead.
func checkpointManager(cfg *config.Config) (*storage.CheckpointManager, error) {
	if cfg.Backend != config.BackendJSON {
		return nil, fmt.Errorf("checkpoints require the %q storage backend (configured: %q)", config.BackendJSON, cfg.Backend)
	}
	manager, err := storage.NewCheckpointManager(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkpoint manager: %w", err)
	}
	return manager, nil
}
