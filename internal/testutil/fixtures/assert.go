package fixtures

import (
	"testing"

	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertMoney checks that got equals the decimal literal want by value.
func AssertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, Money(t, want).Equal(got), "want %s, got %s", want, got.String())
}

// AssertBudgetDataEqual compares two budgets field by field, money by value.
func AssertBudgetDataEqual(t *testing.T, want, got *model.BudgetData) {
	t.Helper()
	require.NotNil(t, got)

	assert.True(t, want.SavingsGoal.Equal(got.SavingsGoal), "savings goal: want %s, got %s", want.SavingsGoal, got.SavingsGoal)
	assert.Equal(t, want.CurrentUser, got.CurrentUser)
	assert.Equal(t, want.UserProfiles, got.UserProfiles)

	require.Len(t, got.Transactions, len(want.Transactions))
	for i := range want.Transactions {
		w, g := want.Transactions[i], got.Transactions[i]
		assert.Equal(t, w.Description, g.Description, "transaction %d", i+1)
		assert.Equal(t, w.Category, g.Category, "transaction %d", i+1)
		assert.Equal(t, w.Type, g.Type, "transaction %d", i+1)
		assert.True(t, w.Amount.Equal(g.Amount), "transaction %d amount: want %s, got %s", i+1, w.Amount, g.Amount)
		assert.True(t, w.Date.Equal(g.Date), "transaction %d date: want %s, got %s", i+1, w.Date, g.Date)
	}

	require.Len(t, got.Categories, len(want.Categories))
	for i := range want.Categories {
		w, g := want.Categories[i], got.Categories[i]
		assert.Equal(t, w.Name, g.Name, "category %d", i+1)
		assert.Equal(t, w.SpendingLimit.Valid, g.SpendingLimit.Valid, "category %d limit set", i+1)
		if w.SpendingLimit.Valid {
			assert.True(t, w.SpendingLimit.Decimal.Equal(g.SpendingLimit.Decimal),
				"category %d limit: want %s, got %s", i+1, w.SpendingLimit.Decimal, g.SpendingLimit.Decimal)
		}
	}

	require.Len(t, got.RecurringTransactions, len(want.RecurringTransactions))
	for i := range want.RecurringTransactions {
		w, g := want.RecurringTransactions[i], got.RecurringTransactions[i]
		assert.Equal(t, w.Description, g.Description, "recurring %d", i+1)
		assert.Equal(t, w.Category, g.Category, "recurring %d", i+1)
		assert.Equal(t, w.Frequency, g.Frequency, "recurring %d", i+1)
		assert.True(t, w.Amount.Equal(g.Amount), "recurring %d amount: want %s, got %s", i+1, w.Amount, g.Amount)
	}
}
