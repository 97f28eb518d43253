package report

import (
	"strings"

	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// CategoryUsage compares spending in a category with its limit.
type CategoryUsage struct {
	Category model.Category
	Spent    decimal.Decimal // Expense magnitude
	Count    int
}

// OverLimit reports whether spending exceeds a set limit.
func (u CategoryUsage) OverLimit() bool {
	if u.Category.Unbounded() {
		return false
	}
	return u.Spent.GreaterThan(u.Category.SpendingLimit.Decimal)
}

// Remaining returns how much may still be spent. It is negative when over the limit
// and meaningless for unbounded categories.
func (u CategoryUsage) Remaining() decimal.Decimal {
	return u.Category.SpendingLimit.Decimal.Sub(u.Spent)
}

// CategorySpending sums expenses for every listed category, matching the free-text
// transaction category without regard to case. Categories keep their list order.
func CategorySpending(txns []model.Transaction, categories []model.Category) []CategoryUsage {
	spent := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, txn := range txns {
		if !txn.IsExpense() {
			continue
		}
		key := strings.ToLower(txn.Category)
		spent[key] = spent[key].Add(txn.Amount.Abs())
		counts[key]++
	}

	usage := make([]CategoryUsage, 0, len(categories))
	for _, cat := range categories {
		key := strings.ToLower(cat.Name)
		total, ok := spent[key]
		if !ok {
			total = decimal.Zero
		}
		usage = append(usage, CategoryUsage{
			Category: cat,
			Spent:    total,
			Count:    counts[key],
		})
	}
	return usage
}
