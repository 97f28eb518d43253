package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/budget/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		check   func(t *testing.T, s any)
		name    string
		backend string
		wantErr bool
	}{
		{
			name:    "json backend",
			backend: config.BackendJSON,
			check: func(t *testing.T, s any) {
				assert.IsType(t, &JSONStorage{}, s)
			},
		},
		{
			name:    "sqlite backend",
			backend: config.BackendSQLite,
			check: func(t *testing.T, s any) {
				assert.IsType(t, &SQLiteStorage{}, s)
			},
		},
		{
			name:    "unknown backend",
			backend: "csv",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Backend = tt.backend
			cfg.DataPath = filepath.Join(dir, "budget_data.json")
			cfg.SQLitePath = filepath.Join(dir, "budget.db")

			store, err := Open(context.Background(), &cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close() })
			tt.check(t, store)
		})
	}
}
