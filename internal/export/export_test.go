package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/budget/internal/testutil/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteCSV(t *testing.T) {
	data := fixtures.StandardBudget(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, data.Transactions))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Description,Amount,Category,Type,Date", lines[0])
	assert.Equal(t, "Paycheck,3000,Salary,Income,2024-02-01T00:00:00Z", lines[1])
	assert.Equal(t, "Rent,-1200,Housing,Expense,2024-02-03T00:00:00Z", lines[2])
	assert.Equal(t, `"Groceries, weekly",-85.4,Food,Expense,2024-01-20T00:00:00Z`, lines[3])
}

func TestWriteCSV_RoundTripsSpecialCharacters(t *testing.T) {
	data := fixtures.NewBuilder(t).
		WithExpense(`Dinner, "fancy"`, "42.10", "Food, out", fixtures.Jan(2024, 5)).
		Build()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, data.Transactions))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{`Dinner, "fancy"`, "-42.1", "Food, out", "Expense", "2024-01-05T00:00:00Z"}, records[1])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Description,Amount,Category,Type,Date\n", buf.String())
}

func TestCSVExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "transactions.csv")

	err := NewCSVExporter(path).Export(context.Background(), fixtures.StandardBudget(t))
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "Description,Amount,Category,Type,Date\n"))
}

func TestCSVExporter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "transactions.csv")
	err := NewCSVExporter(path).Export(ctx, fixtures.StandardBudget(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestXLSXExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.xlsx")
	data := fixtures.StandardBudget(t)

	require.NoError(t, NewXLSXExporter(path).Export(context.Background(), data))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{TransactionsSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(TransactionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, len(data.Transactions)+1)
	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, "Paycheck", rows[1][0])
	assert.Equal(t, "3000", rows[1][1])
	assert.Equal(t, "2024-02-01", rows[1][4])

	balance, err := f.GetCellValue(SummarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "2210.35", balance)

	user, err := f.GetCellValue(SummarySheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "alex", user)
}

func TestWriteRow_InvalidCoordinates(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	err := writeRow(f, "Sheet1", 0, []any{"Paycheck"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to address cell")
}

func TestBuildWorkbook_EmptyLedger(t *testing.T) {
	f, err := BuildWorkbook(fixtures.NewBuilder(t).Build())
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(TransactionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, CSVHeader, rows[0])
}
