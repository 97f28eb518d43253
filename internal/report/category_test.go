package report

import (
	"testing"

	"github.com/Veraticus/budget/internal/testutil/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorySpending(t *testing.T) {
	data := fixtures.StandardBudget(t)

	usage := CategorySpending(data.Transactions, data.Categories)
	require.Len(t, usage, 3)

	housing := usage[0]
	assert.Equal(t, "Housing", housing.Category.Name)
	fixtures.AssertMoney(t, "1200", housing.Spent)
	assert.Equal(t, 1, housing.Count)
	assert.False(t, housing.OverLimit())
	fixtures.AssertMoney(t, "300", housing.Remaining())

	food := usage[1]
	fixtures.AssertMoney(t, "89.65", food.Spent)
	assert.Equal(t, 2, food.Count)
	assert.True(t, food.OverLimit())
	fixtures.AssertMoney(t, "-39.65", food.Remaining())

	fun := usage[2]
	assert.True(t, fun.Spent.IsZero())
	assert.Equal(t, 0, fun.Count)
	assert.False(t, fun.OverLimit())
}

func TestCategorySpending_CaseInsensitiveAndIncomeIgnored(t *testing.T) {
	data := fixtures.NewBuilder(t).
		WithExpense("Snacks", "12", "food", fixtures.Jan(2024, 1)).
		WithIncome("Sold lunch", "50", "Food", fixtures.Jan(2024, 2)).
		WithCategory("FOOD", "10").
		Build()

	usage := CategorySpending(data.Transactions, data.Categories)
	require.Len(t, usage, 1)
	fixtures.AssertMoney(t, "12", usage[0].Spent)
	assert.True(t, usage[0].OverLimit())
}
