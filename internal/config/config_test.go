package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/budget/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "budget_data.json", cfg.DataPath)
	assert.Equal(t, BackendJSON, cfg.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "0.8", cfg.OverspendingThreshold.String())
}

func TestLoad_Overrides(t *testing.T) {
	v := newViper()
	v.Set("data.path", "/tmp/mine.json")
	v.Set("storage.backend", "SQLite")
	v.Set("storage.sqlite_path", "/tmp/mine.db")
	v.Set("budget.overspending_threshold", "0.5")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/mine.json", cfg.DataPath)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/mine.db", cfg.SQLitePath)
	assert.Equal(t, "0.5", cfg.OverspendingThreshold.String())
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "storage:\n  backend: sqlite\n  sqlite_path: /var/tmp/b.db\nbudget:\n  overspending_threshold: 0.9\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/var/tmp/b.db", cfg.SQLitePath)
	assert.Equal(t, "0.9", cfg.OverspendingThreshold.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
		name  string
	}{
		{name: "unknown backend", key: "storage.backend", value: "postgres"},
		{name: "bad threshold", key: "budget.overspending_threshold", value: "lots"},
		{name: "negative threshold", key: "budget.overspending_threshold", value: "-0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("BUDGET_TEST_DIR", "/srv/budget")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: home},
		{input: "~/data.json", want: filepath.Join(home, "data.json")},
		{input: "$BUDGET_TEST_DIR/data.json", want: "/srv/budget/data.json"},
		{input: "relative.json", want: "relative.json"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
