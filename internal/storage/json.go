package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/model"
	"github.com/google/uuid"
)

// JSONStorage keeps the budget state in a single JSON document.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a JSON file store at path. The file need not exist yet.
func NewJSONStorage(path string) (*JSONStorage, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	return &JSONStorage{path: filepath.Clean(path)}, nil
}

// Path returns the location of the data file.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the data file. A missing file means a first run and yields nil, nil.
func (s *JSONStorage) Load(ctx context.Context) (*model.BudgetData, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from user configuration
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no budget data file yet", "path", s.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read budget data: %w", err)
	}

	data, err := decodeBudgetData(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}

	slog.Debug("loaded budget data",
		"path", s.path,
		"transactions", len(data.Transactions),
		"categories", len(data.Categories))
	return data, nil
}

// Save writes data to a temporary file next to the data file and renames it into place.
func (s *JSONStorage) Save(ctx context.Context, data *model.BudgetData) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudgetData(data); err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode budget data: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), uuid.New().String()))
	if err := os.WriteFile(tmpPath, encoded, 0600); err != nil {
		return fmt.Errorf("failed to write budget data: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			slog.Error("failed to remove temporary data file", "path", tmpPath, "error", rmErr)
		}
		return fmt.Errorf("failed to replace budget data: %w", err)
	}

	slog.Debug("saved budget data", "path", s.path, "bytes", len(encoded))
	return nil
}

// Close is a no-op; files are only open for the duration of Load and Save.
func (s *JSONStorage) Close() error {
	return nil
}

func decodeBudgetData(raw []byte) (*model.BudgetData, error) {
	var data model.BudgetData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptData, err)
	}
	data.Normalize()
	return &data, nil
}
