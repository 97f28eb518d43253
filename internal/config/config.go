package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/budget/internal/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds the settings for a budget session.
type Config struct {
	DataPath              string
	Backend               string
	SQLitePath            string
	LogLevel              string
	LogFormat             string
	OverspendingThreshold decimal.Decimal
}

// DefaultConfig returns a Config with the defaults of a fresh install.
func DefaultConfig() Config {
	return Config{
		DataPath:              "budget_data.json",
		Backend:               BackendJSON,
		SQLitePath:            "$HOME/.local/share/budget/budget.db",
		LogLevel:              "info",
		LogFormat:             "console",
		OverspendingThreshold: decimal.RequireFromString("0.8"),
	}
}

// SetDefaults registers the defaults on v so config files and env vars can override them.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("data.path", d.DataPath)
	v.SetDefault("storage.backend", d.Backend)
	v.SetDefault("storage.sqlite_path", d.SQLitePath)
	v.SetDefault("logging.level", d.LogLevel)
	v.SetDefault("logging.format", d.LogFormat)
	v.SetDefault("budget.overspending_threshold", d.OverspendingThreshold.String())
}

// Load reads the configuration from v, expands paths and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if s := v.GetString("data.path"); s != "" {
		cfg.DataPath = s
	}
	if s := v.GetString("storage.backend"); s != "" {
		cfg.Backend = strings.ToLower(s)
	}
	if s := v.GetString("storage.sqlite_path"); s != "" {
		cfg.SQLitePath = s
	}
	if s := v.GetString("logging.level"); s != "" {
		cfg.LogLevel = s
	}
	if s := v.GetString("logging.format"); s != "" {
		cfg.LogFormat = s
	}
	if s := v.GetString("budget.overspending_threshold"); s != "" {
		threshold, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: overspending threshold %q: %v", common.ErrInvalidConfig, s, err)
		}
		cfg.OverspendingThreshold = threshold
	}

	cfg.DataPath = ExpandPath(cfg.DataPath)
	cfg.SQLitePath = ExpandPath(cfg.SQLitePath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON:
		if c.DataPath == "" {
			return fmt.Errorf("%w: data.path", common.ErrMissingConfig)
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: storage.sqlite_path", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, c.Backend)
	}

	if c.OverspendingThreshold.IsNegative() {
		return fmt.Errorf("%w: overspending threshold cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}
