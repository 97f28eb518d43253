package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/report"
	"github.com/xuri/excelize/v2"
)

// Sheet names used in XLSX exports.
const (
	TransactionsSheet = "Transactions"
	SummarySheet      = "Summary"
)

// XLSXExporter writes transactions and a summary to an Excel workbook.
type XLSXExporter struct {
	path string
}

// NewXLSXExporter creates an exporter that writes to path.
func NewXLSXExporter(path string) *XLSXExporter {
	return &XLSXExporter{path: path}
}

// Export builds the workbook and saves it.
func (e *XLSXExporter) Export(ctx context.Context, data *model.BudgetData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("no budget data to export")
	}

	f, err := BuildWorkbook(data)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close workbook", "error", closeErr)
		}
	}()

	if err := f.SaveAs(e.path); err != nil {
		return fmt.Errorf("failed to save %s: %w", e.path, err)
	}

	slog.Debug("exported transactions", "format", "xlsx", "path", e.path, "count", len(data.Transactions))
	return nil
}

// BuildWorkbook lays out the Transactions and Summary sheets. The caller closes
// the returned file.
func BuildWorkbook(data *model.BudgetData) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := layoutWorkbook(f, data); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close workbook", "error", closeErr)
		}
		return nil, err
	}
	return f, nil
}

func layoutWorkbook(f *excelize.File, data *model.BudgetData) error {
	index, err := f.NewSheet(TransactionsSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	header := make([]any, len(CSVHeader))
	for i, h := range CSVHeader {
		header[i] = h
	}
	if err := writeRow(f, TransactionsSheet, 1, header); err != nil {
		return err
	}

	for i, txn := range data.Transactions {
		amount, _ := txn.Amount.Float64()
		values := []any{txn.Description, amount, txn.Category, string(txn.Type), txn.Date.Format("2006-01-02")}
		if err := writeRow(f, TransactionsSheet, i+2, values); err != nil {
			return fmt.Errorf("failed to write transaction %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(TransactionsSheet, "A", "A", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(TransactionsSheet, "B", "E", 14); err != nil {
		return err
	}

	return writeSummarySheet(f, data)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, data *model.BudgetData) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	s := report.Summarize(data.Transactions, data.SavingsGoal)
	rows := []struct {
		label string
		value any
	}{
		{"Total Income", s.TotalIncome.InexactFloat64()},
		{"Total Expenses", s.TotalExpenses.InexactFloat64()},
		{"Balance", s.Balance.InexactFloat64()},
		{"Savings Goal", s.SavingsGoal.InexactFloat64()},
		{"User", data.CurrentUser.UserName},
	}

	for i, r := range rows {
		row := i + 1
		if err := f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", row), r.label); err != nil {
			return err
		}
		if err := f.SetCellValue(SummarySheet, fmt.Sprintf("B%d", row), r.value); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "A", 18)
}
