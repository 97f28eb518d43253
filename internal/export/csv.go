// Package export writes the ledger to files other programs can read.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/budget/internal/model"
)

// CSVHeader is the first row of every CSV export.
var CSVHeader = []string{"Description", "Amount", "Category", "Type", "Date"}

// CSVExporter writes transactions to a CSV file.
type CSVExporter struct {
	path string
}

// NewCSVExporter creates an exporter that writes to path, replacing any existing file.
func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{path: path}
}

// Export writes every transaction of data to the exporter's file.
func (e *CSVExporter) Export(ctx context.Context, data *model.BudgetData) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("no budget data to export")
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	// #nosec G304 - path is chosen by the user
	f, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", e.path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", e.path, closeErr)
		}
	}()

	if err := WriteCSV(f, data.Transactions); err != nil {
		return err
	}

	slog.Debug("exported transactions", "format", "csv", "path", e.path, "count", len(data.Transactions))
	return nil
}

// WriteCSV writes the header and one row per transaction. Fields containing
// commas, quotes or newlines are quoted.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, txn := range txns {
		record := []string{
			txn.Description,
			txn.Amount.String(),
			txn.Category,
			string(txn.Type),
			txn.Date.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write transaction %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
