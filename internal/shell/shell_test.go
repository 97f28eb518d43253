package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/ledger"
	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/testutil/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	saved   *model.BudgetData
	saveErr error
	saves   int
}

func (m *memoryStorage) Load(context.Context) (*model.BudgetData, error) { return m.saved, nil }

func (m *memoryStorage) Save(_ context.Context, data *model.BudgetData) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = data
	return nil
}

func (m *memoryStorage) Close() error { return nil }

type harness struct {
	shell  *Shell
	ledger *ledger.Ledger
	store  *memoryStorage
	out    *bytes.Buffer
}

func newHarness(t *testing.T, data *model.BudgetData, input ...string) *harness {
	t.Helper()

	l := ledger.New(data, ledger.WithClock(fixtures.FixedClock(time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC))))
	store := &memoryStorage{}
	out := &bytes.Buffer{}
	prompter := cli.NewPrompter(strings.NewReader(strings.Join(input, "\n")+"\n"), out)

	return &harness{
		shell:  New(l, store, prompter),
		ledger: l,
		store:  store,
		out:    out,
	}
}

func (h *harness) run(t *testing.T) string {
	t.Helper()
	require.NoError(t, h.shell.Run(context.Background()))
	return h.out.String()
}

func TestShell_AddIncomeAndExpense(t *testing.T) {
	h := newHarness(t, nil,
		"1", "Paycheck", "1000", "Salary",
		"2", "Rent", "900", "Housing",
		"3",
		"14",
	)
	out := h.run(t)

	txns := h.ledger.Transactions()
	require.Len(t, txns, 2)
	fixtures.AssertMoney(t, "1000", txns[0].Amount)
	fixtures.AssertMoney(t, "-900", txns[1].Amount)
	assert.Equal(t, model.TransactionTypeExpense, txns[1].Type)

	assert.Contains(t, out, "Income added.")
	assert.Contains(t, out, "Expense added.")
	assert.Equal(t, 1, strings.Count(out, "Warning: You are overspending!"))
	assert.Contains(t, out, "Total Income: $1,000.00")
	assert.Contains(t, out, "Total Expenses: -$900.00")
	assert.Contains(t, out, "Balance: $100.00")
	assert.Contains(t, out, "Savings Goal: $0.00")
	assert.NotContains(t, out, "more to reach your savings goal")
	assert.Contains(t, out, "Data saved. Goodbye!")

	require.Equal(t, 1, h.store.saves)
	assert.Len(t, h.store.saved.Transactions, 2)
}

func TestShell_InvalidOption(t *testing.T) {
	h := newHarness(t, nil, "99", "abc", "14")
	out := h.run(t)

	assert.Equal(t, 2, strings.Count(out, "Invalid option. Please try again."))
	assert.Equal(t, 3, strings.Count(out, "14. Save and Exit"), "menu is redisplayed after each invalid option")
}

func TestShell_MalformedAmountReturnsToMenu(t *testing.T) {
	h := newHarness(t, nil, "1", "Paycheck", "lots", "Salary")
	out := h.run(t)

	assert.Contains(t, out, "Invalid input")
	assert.Empty(t, h.ledger.Transactions())
	assert.Zero(t, h.store.saves, "end of input exits without saving")
}

func TestShell_ExponentAmountIsRejected(t *testing.T) {
	h := newHarness(t, nil,
		"1", "Paycheck", "1000", "Salary",
		"1", "Bonus", "1e900000000", "Salary",
		"3",
		"14",
	)
	out := h.run(t)

	assert.Contains(t, out, "Invalid input")
	require.Len(t, h.ledger.Transactions(), 1)
	assert.Contains(t, out, "Total Income: $1,000.00")
	require.Equal(t, 1, h.store.saves)
}

func TestShell_EditTransaction(t *testing.T) {
	h := newHarness(t, fixtures.StandardBudget(t),
		"6", "2", "Rent (March)", "1250", "Home",
		"6", "9",
		"6", "two",
		"14",
	)
	out := h.run(t)

	edited, err := h.ledger.Transaction(2)
	require.NoError(t, err)
	assert.Equal(t, "Rent (March)", edited.Description)
	assert.Equal(t, "Home", edited.Category)
	fixtures.AssertMoney(t, "-1250", edited.Amount)

	assert.Contains(t, out, "Transaction updated.")
	assert.Contains(t, out, "Invalid transaction number.")
	assert.Contains(t, out, "Invalid input")
}

func TestShell_DeleteTransaction(t *testing.T) {
	h := newHarness(t, nil,
		"1", "first", "1", "a",
		"1", "second", "2", "b",
		"1", "third", "3", "c",
		"7", "1",
		"7", "3",
		"4",
		"14",
	)
	out := h.run(t)

	txns := h.ledger.Transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, "second", txns[0].Description)
	assert.Equal(t, "third", txns[1].Description)

	assert.Contains(t, out, "Transaction deleted.")
	assert.Contains(t, out, "Invalid transaction number.")
	assert.Contains(t, out, "1. second - $2.00 (Income) [Category: b]")
}

func TestShell_SavingsGoal(t *testing.T) {
	h := newHarness(t, fixtures.StandardBudget(t),
		"3",
		"5", "2000",
		"3",
		"5", "-5",
		"14",
	)
	out := h.run(t)

	assert.Contains(t, out, "Savings Goal: $5,000.00")
	assert.Contains(t, out, "You need $2,789.65 more to reach your savings goal.")
	assert.Contains(t, out, "Savings goal set to $2,000.00.")
	assert.Contains(t, out, "Congratulations! You've reached your savings goal.")
	assert.Contains(t, out, "Savings goal cannot be negative.")
	fixtures.AssertMoney(t, "2000", h.ledger.SavingsGoal())
}

func TestShell_Reports(t *testing.T) {
	h := newHarness(t, fixtures.StandardBudget(t),
		"8", "1",
		"8", "2",
		"8", "3",
		"8", "7", "0",
		"14",
	)
	out := h.run(t)

	monthly := strings.Index(out, "2024-2")
	january := strings.Index(out, "2024-1 ")
	december := strings.Index(out, "2023-12")
	require.True(t, monthly >= 0 && january >= 0 && december >= 0)
	assert.Less(t, monthly, january, "periods appear in first-seen order")
	assert.Less(t, january, december)

	assert.Contains(t, out, "$3,000.00")
	assert.Contains(t, out, "-$1,289.65")
	assert.Contains(t, out, "over limit")
	assert.Contains(t, out, "Invalid option.")
	assert.Equal(t, 5, strings.Count(out, "0. Back"), "an invalid choice redisplays the sub-menu")
}

func TestShell_Search(t *testing.T) {
	h := newHarness(t, fixtures.StandardBudget(t),
		"9", "FOOD",
		"9", "travel",
		"14",
	)
	out := h.run(t)

	assert.Contains(t, out, "Search Results:")
	assert.Contains(t, out, "1. Groceries, weekly - -$85.40 (Expense) [Category: Food]")
	assert.Contains(t, out, "2. Coffee - -$4.25 (Expense) [Category: Food]")
	assert.Contains(t, out, "No matching transactions found.")
}

func TestShell_ExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	h := newHarness(t, fixtures.StandardBudget(t), "10", path, "14")
	out := h.run(t)

	assert.Contains(t, out, "Transactions exported to "+path)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Groceries, weekly",-85.4,Food,Expense`)
}

func TestShell_ManageCategories(t *testing.T) {
	h := newHarness(t, nil,
		"11", "1", "Food", "200",
		"11", "1", "Fun", "",
		"11", "2",
		"11", "3", "1", "Groceries", "250",
		"11", "4", "5",
		"11", "4", "2",
		"11", "1", "Bad", "plenty",
		"14",
	)
	out := h.run(t)

	cats := h.ledger.Categories()
	require.Len(t, cats, 1)
	assert.Equal(t, "Groceries", cats[0].Name)
	fixtures.AssertMoney(t, "250", cats[0].SpendingLimit.Decimal)

	assert.Contains(t, out, "1. Food - Limit: $200.00")
	assert.Contains(t, out, "2. Fun - Limit: none")
	assert.Contains(t, out, "Category updated.")
	assert.Contains(t, out, "Invalid category number.")
	assert.Contains(t, out, "Category deleted.")
	assert.Contains(t, out, "Invalid input")
}

func TestShell_ManageRecurring(t *testing.T) {
	h := newHarness(t, nil,
		"12", "1", "Netflix", "15.99", "Entertainment", "monthly",
		"12", "1", "Gym", "30", "Health", "fortnightly",
		"12", "2",
		"12", "3", "2",
		"14",
	)
	out := h.run(t)

	require.Len(t, h.ledger.Recurring(), 1)
	assert.Equal(t, model.FrequencyMonthly, h.ledger.Recurring()[0].Frequency)
	assert.Empty(t, h.ledger.Transactions())

	assert.Contains(t, out, "Recurring transaction added.")
	assert.Contains(t, out, "1. Netflix - $15.99 (Monthly) [Category: Entertainment]")
	assert.Contains(t, out, "Invalid input")
	assert.Contains(t, out, "Invalid recurring transaction number.")
}

func TestShell_ManageProfiles(t *testing.T) {
	h := newHarness(t, nil,
		"13", "1", "alex",
		"13", "1", "sam",
		"13", "3", "2",
		"13", "3", "4",
		"13", "2",
		"14",
	)
	out := h.run(t)

	assert.Equal(t, "sam", h.ledger.CurrentUser().UserName)
	assert.Contains(t, out, "Switched to user profile: sam")
	assert.Contains(t, out, "Invalid user profile number.")
	assert.Contains(t, out, "2. sam (current)")
	assert.Contains(t, out, "Budget Tracker (sam)")
	assert.Equal(t, "sam", h.store.saved.CurrentUser.UserName)
}

func TestShell_SaveFailureKeepsRunning(t *testing.T) {
	h := newHarness(t, nil, "1", "Paycheck", "10", "Salary", "14")
	h.store.saveErr = errors.New("disk full")

	out := h.run(t)

	assert.Contains(t, out, "Could not save your data")
	assert.NotContains(t, out, "Goodbye!")
	assert.Equal(t, 1, h.store.saves)
	assert.Equal(t, 3, strings.Count(out, "14. Save and Exit"), "menu is shown again after the failed save")
}

func TestShell_CanceledContext(t *testing.T) {
	h := newHarness(t, nil, "1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.shell.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, h.store.saves)
}

func TestShell_EmptyViews(t *testing.T) {
	h := newHarness(t, nil, "4", "8", "1", "8", "3", "11", "2", "12", "2", "13", "2", "14")
	out := h.run(t)

	assert.Contains(t, out, "No transactions recorded yet.")
	assert.Contains(t, out, "No categories defined.")
	assert.Contains(t, out, "No recurring transactions defined.")
	assert.Contains(t, out, "No user profiles defined.")
}
