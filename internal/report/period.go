package report

import (
	"fmt"
	"time"

	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// PeriodKey identifies a calendar period. Month is zero for yearly periods.
type PeriodKey struct {
	Year  int
	Month time.Month
}

// PeriodTotals holds the totals for one calendar period.
type PeriodTotals struct {
	Key      PeriodKey
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
	Count    int
}

// Label renders the period as "2024-3" for months and "2024" for years.
func (p PeriodTotals) Label() string {
	if p.Key.Month == 0 {
		return fmt.Sprintf("%d", p.Key.Year)
	}
	return fmt.Sprintf("%d-%d", p.Key.Year, int(p.Key.Month))
}

// Monthly groups transactions by year and month.
// Groups appear in the order their period is first seen, not chronologically.
func Monthly(txns []model.Transaction) []PeriodTotals {
	return groupBy(txns, func(t time.Time) PeriodKey {
		return PeriodKey{Year: t.Year(), Month: t.Month()}
	})
}

// Yearly groups transactions by year, in first-seen order.
func Yearly(txns []model.Transaction) []PeriodTotals {
	return groupBy(txns, func(t time.Time) PeriodKey {
		return PeriodKey{Year: t.Year()}
	})
}

func groupBy(txns []model.Transaction, keyOf func(time.Time) PeriodKey) []PeriodTotals {
	var groups []PeriodTotals
	index := make(map[PeriodKey]int)

	for _, txn := range txns {
		key := keyOf(txn.Date)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, PeriodTotals{
				Key:      key,
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
			})
		}

		g := &groups[i]
		g.Count++
		switch txn.Type {
		case model.TransactionTypeIncome:
			g.Income = g.Income.Add(txn.Amount)
		case model.TransactionTypeExpense:
			g.Expenses = g.Expenses.Add(txn.Amount)
		}
	}

	for i := range groups {
		groups[i].Balance = groups[i].Income.Add(groups[i].Expenses)
	}
	return groups
}
