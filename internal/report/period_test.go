package report

import (
	"testing"
	"time"

	"github.com/Veraticus/budget/internal/testutil/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthly_FirstSeenOrder(t *testing.T) {
	txns := fixtures.StandardBudget(t).Transactions

	groups := Monthly(txns)
	require.Len(t, groups, 3)

	assert.Equal(t, "2024-2", groups[0].Label())
	assert.Equal(t, 3, groups[0].Count)
	fixtures.AssertMoney(t, "3000", groups[0].Income)
	fixtures.AssertMoney(t, "-1204.25", groups[0].Expenses)
	fixtures.AssertMoney(t, "1795.75", groups[0].Balance)

	assert.Equal(t, "2024-1", groups[1].Label())
	assert.Equal(t, PeriodKey{Year: 2024, Month: time.January}, groups[1].Key)
	fixtures.AssertMoney(t, "-85.40", groups[1].Expenses)

	assert.Equal(t, "2023-12", groups[2].Label())
	fixtures.AssertMoney(t, "500", groups[2].Income)
}

func TestYearly(t *testing.T) {
	txns := fixtures.StandardBudget(t).Transactions

	groups := Yearly(txns)
	require.Len(t, groups, 2)

	assert.Equal(t, "2024", groups[0].Label())
	assert.Equal(t, 4, groups[0].Count)
	fixtures.AssertMoney(t, "3000", groups[0].Income)
	fixtures.AssertMoney(t, "-1289.65", groups[0].Expenses)

	assert.Equal(t, "2023", groups[1].Label())
	assert.Equal(t, 1, groups[1].Count)
}

func TestGrouping_ReconcilesWithSummary(t *testing.T) {
	data := fixtures.StandardBudget(t)
	summary := Summarize(data.Transactions, data.SavingsGoal)

	for name, groups := range map[string][]PeriodTotals{
		"monthly": Monthly(data.Transactions),
		"yearly":  Yearly(data.Transactions),
	} {
		t.Run(name, func(t *testing.T) {
			income, expenses, count := fixtures.Money(t, "0"), fixtures.Money(t, "0"), 0
			for _, g := range groups {
				income = income.Add(g.Income)
				expenses = expenses.Add(g.Expenses)
				count += g.Count
			}
			assert.True(t, summary.TotalIncome.Equal(income))
			assert.True(t, summary.TotalExpenses.Equal(expenses))
			assert.Equal(t, len(data.Transactions), count)
		})
	}
}

func TestMonthly_Empty(t *testing.T) {
	assert.Empty(t, Monthly(nil))
	assert.Empty(t, Yearly(nil))
}
