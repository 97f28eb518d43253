package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// CheckpointManager keeps named copies of the JSON data file.
type CheckpointManager struct {
	dataPath       string
	checkpointsDir string
}

// CheckpointMetadata contains metadata about a checkpoint.
type CheckpointMetadata struct {
	CreatedAt   time.Time      `json:"created_at"`
	Counts      map[string]int `json:"counts"`
	ID          string         `json:"id"`
	Description string         `json:"description"`
	FileSize    int64          `json:"file_size"`
	IsAuto      bool           `json:"is_auto"`
}

// CheckpointInfo represents information about a checkpoint for listing.
type CheckpointInfo struct {
	CreatedAt    time.Time
	ID           string
	Description  string
	FileSize     int64
	Transactions int
	Categories   int
	Recurring    int
	Profiles     int
	IsAuto       bool
}

// Common errors.
var (
	ErrCheckpointNotFound  = errors.New("checkpoint not found")
	ErrCheckpointCorrupted = errors.New("checkpoint integrity check failed")
	ErrCheckpointExists    = errors.New("checkpoint already exists")
	ErrNothingToCheckpoint = errors.New("no budget data file to checkpoint")
	ErrInvalidCheckpointID = errors.New("invalid checkpoint ID: cannot contain path separators")
)

const maxAutoCheckpoints = 5

// NewCheckpointManager creates a manager storing checkpoints in a "checkpoints"
// directory beside the data file.
func NewCheckpointManager(dataPath string) (*CheckpointManager, error) {
	if err := validateString(dataPath, "dataPath"); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data path: %w", err)
	}

	checkpointsDir := filepath.Join(filepath.Dir(absPath), "checkpoints")
	if err := os.MkdirAll(checkpointsDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create checkpoints directory: %w", err)
	}

	return &CheckpointManager{
		dataPath:       absPath,
		checkpointsDir: checkpointsDir,
	}, nil
}

// Dir returns the directory holding the checkpoints.
func (cm *CheckpointManager) Dir() string {
	return cm.checkpointsDir
}

// Create copies the current data file into a new checkpoint.
func (cm *CheckpointManager) Create(_ context.Context, tag, description string) (*CheckpointInfo, error) {
	if tag == "" {
		tag = fmt.Sprintf("checkpoint-%s", time.Now().Format("2006-01-02-150405"))
	}
	if err := validateCheckpointID(tag); err != nil {
		return nil, err
	}

	checkpointPath := cm.checkpointPath(tag)
	if _, err := os.Stat(checkpointPath); err == nil {
		return nil, ErrCheckpointExists
	}

	// #nosec G304 - dataPath comes from user configuration
	raw, err := os.ReadFile(cm.dataPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNothingToCheckpoint
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read budget data: %w", err)
	}

	counts, err := collectCounts(raw)
	if err != nil {
		return nil, fmt.Errorf("refusing to checkpoint unreadable data: %w", err)
	}

	if err := cm.copyFile(cm.dataPath, checkpointPath); err != nil {
		return nil, fmt.Errorf("failed to copy budget data: %w", err)
	}

	metadata := CheckpointMetadata{
		ID:          tag,
		CreatedAt:   time.Now(),
		Description: description,
		FileSize:    int64(len(raw)),
		Counts:      counts,
	}

	if err := cm.saveMetadata(cm.metadataPath(tag), metadata); err != nil {
		// Clean up checkpoint file on metadata save failure
		if rmErr := os.Remove(checkpointPath); rmErr != nil {
			slog.Error("failed to remove checkpoint file after metadata save failure", "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save metadata: %w", err)
	}

	info := metadata.info()
	return &info, nil
}

// List returns all checkpoints, newest first.
func (cm *CheckpointManager) List(_ context.Context) ([]CheckpointInfo, error) {
	entries, err := os.ReadDir(cm.checkpointsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoints directory: %w", err)
	}

	checkpoints := make([]CheckpointInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".meta.json") {
			continue
		}

		metadata, err := cm.loadMetadata(filepath.Join(cm.checkpointsDir, entry.Name()))
		if err != nil {
			slog.Debug("skipping unreadable checkpoint metadata", "file", entry.Name(), "error", err)
			continue
		}
		checkpoints = append(checkpoints, metadata.info())
	}

	sort.SliceStable(checkpoints, func(i, j int) bool {
		return checkpoints[i].CreatedAt.After(checkpoints[j].CreatedAt)
	})

	return checkpoints, nil
}

// Restore replaces the data file with the checkpoint's copy.
// The current file is kept aside until the copy succeeds.
func (cm *CheckpointManager) Restore(_ context.Context, checkpointID string) error {
	if err := validateCheckpointID(checkpointID); err != nil {
		return err
	}

	checkpointPath := cm.checkpointPath(checkpointID)
	if _, err := os.Stat(checkpointPath); err != nil {
		if os.IsNotExist(err) {
			return ErrCheckpointNotFound
		}
		return fmt.Errorf("failed to access checkpoint: %w", err)
	}

	if _, err := cm.loadMetadata(cm.metadataPath(checkpointID)); err != nil {
		return fmt.Errorf("failed to load checkpoint metadata: %w", err)
	}

	if err := verifyCheckpointIntegrity(checkpointPath); err != nil {
		return ErrCheckpointCorrupted
	}

	backupPath := cm.dataPath + ".restore-backup"
	hadData := true
	if err := cm.copyFile(cm.dataPath, backupPath); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to backup current data: %w", err)
		}
		hadData = false
	}

	if err := cm.copyFile(checkpointPath, cm.dataPath); err != nil {
		if hadData {
			if restoreErr := cm.copyFile(backupPath, cm.dataPath); restoreErr != nil {
				slog.Error("failed to restore backup after checkpoint restore failure", "error", restoreErr)
			}
		}
		return fmt.Errorf("failed to restore checkpoint: %w", err)
	}

	if hadData {
		if err := os.Remove(backupPath); err != nil {
			slog.Error("failed to remove backup file", "error", err)
		}
	}

	return nil
}

// Delete removes a checkpoint and its metadata.
func (cm *CheckpointManager) Delete(_ context.Context, checkpointID string) error {
	if err := validateCheckpointID(checkpointID); err != nil {
		return err
	}

	checkpointPath := cm.checkpointPath(checkpointID)
	if _, err := os.Stat(checkpointPath); err != nil {
		if os.IsNotExist(err) {
			return ErrCheckpointNotFound
		}
		return fmt.Errorf("failed to access checkpoint: %w", err)
	}

	if err := os.Remove(checkpointPath); err != nil {
		return fmt.Errorf("failed to remove checkpoint file: %w", err)
	}

	if err := os.Remove(cm.metadataPath(checkpointID)); err != nil {
		slog.Debug("failed to remove metadata file", "error", err, "id", checkpointID)
	}

	return nil
}

// AutoCheckpoint snapshots the data file before a bulk change such as an import.
// A missing data file is not an error; there is nothing to protect yet.
func (cm *CheckpointManager) AutoCheckpoint(ctx context.Context, prefix string) (*CheckpointInfo, error) {
	tag := fmt.Sprintf("auto-%s-%s", prefix, time.Now().Format("2006-01-02-150405.000"))
	description := fmt.Sprintf("Automatic checkpoint before %s", prefix)

	info, err := cm.Create(ctx, tag, description)
	if errors.Is(err, ErrNothingToCheckpoint) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create auto-checkpoint: %w", err)
	}

	metadataPath := cm.metadataPath(tag)
	metadata, err := cm.loadMetadata(metadataPath)
	if err == nil {
		metadata.IsAuto = true
		if saveErr := cm.saveMetadata(metadataPath, *metadata); saveErr != nil {
			slog.Error("failed to save updated metadata for auto-checkpoint", "error", saveErr)
		}
		info.IsAuto = true
	}

	if err := cm.cleanupOldAutoCheckpoints(ctx); err != nil {
		slog.Warn("failed to clean up old auto-checkpoints", "error", err)
	}

	return info, nil
}

func (cm *CheckpointManager) cleanupOldAutoCheckpoints(ctx context.Context) error {
	checkpoints, err := cm.List(ctx)
	if err != nil {
		return err
	}

	autoCount := 0
	for _, cp := range checkpoints {
		if !cp.IsAuto {
			continue
		}
		autoCount++
		if autoCount > maxAutoCheckpoints {
			if err := cm.Delete(ctx, cp.ID); err != nil {
				slog.Debug("failed to delete old auto-checkpoint during cleanup", "error", err, "checkpoint", cp.ID)
			}
		}
	}

	return nil
}

func (cm *CheckpointManager) checkpointPath(id string) string {
	return filepath.Join(cm.checkpointsDir, id+".json")
}

func (cm *CheckpointManager) metadataPath(id string) string {
	return filepath.Join(cm.checkpointsDir, id+".meta.json")
}

func (m CheckpointMetadata) info() CheckpointInfo {
	return CheckpointInfo{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt,
		Description:  m.Description,
		FileSize:     m.FileSize,
		Transactions: m.Counts["transactions"],
		Categories:   m.Counts["categories"],
		Recurring:    m.Counts["recurring"],
		Profiles:     m.Counts["profiles"],
		IsAuto:       m.IsAuto,
	}
}

func validateCheckpointID(id string) error {
	if strings.Contains(id, "/") || strings.Contains(id, "\\") || strings.Contains(id, "..") {
		return ErrInvalidCheckpointID
	}
	return validateString(id, "checkpoint ID")
}

func collectCounts(raw []byte) (map[string]int, error) {
	data, err := decodeBudgetData(raw)
	if err != nil {
		return nil, err
	}

	return map[string]int{
		"transactions": len(data.Transactions),
		"categories":   len(data.Categories),
		"recurring":    len(data.RecurringTransactions),
		"profiles":     len(data.UserProfiles),
	}, nil
}

func verifyCheckpointIntegrity(path string) error {
	// #nosec G304 - path is built from a validated checkpoint ID
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = decodeBudgetData(raw)
	return err
}

func (cm *CheckpointManager) copyFile(src, dst string) error {
	// #nosec G304 - src is the data file or a validated checkpoint path
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := source.Close(); closeErr != nil {
			slog.Error("failed to close source file", "error", closeErr)
		}
	}()

	// Create temporary file first for atomic operation
	tmpDst := dst + ".tmp"
	// #nosec G304 - tmpDst is derived from validated paths
	destination, err := os.OpenFile(tmpDst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destination, source); err != nil {
		if closeErr := destination.Close(); closeErr != nil {
			slog.Error("failed to close destination file after copy error", "error", closeErr)
		}
		if rmErr := os.Remove(tmpDst); rmErr != nil {
			slog.Error("failed to remove temporary file after copy error", "error", rmErr)
		}
		return err
	}

	if err := destination.Close(); err != nil {
		if removeErr := os.Remove(tmpDst); removeErr != nil {
			slog.Error("failed to remove temporary file after close error", "error", removeErr)
		}
		return err
	}

	return os.Rename(tmpDst, dst)
}

func (cm *CheckpointManager) saveMetadata(path string, metadata CheckpointMetadata) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

func (cm *CheckpointManager) loadMetadata(path string) (*CheckpointMetadata, error) {
	// #nosec G304 - path is inside the checkpoints directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var metadata CheckpointMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, err
	}

	return &metadata, nil
}
