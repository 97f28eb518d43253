// Package report computes read-only aggregates over ledger transactions.
package report

import (
	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// DefaultOverspendingThreshold is the share of income that expenses may reach before a warning.
var DefaultOverspendingThreshold = decimal.RequireFromString("0.8")

// Summary contains the overall totals of a ledger.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal // Sum of negative expense amounts, so never positive
	Balance       decimal.Decimal
	SavingsGoal   decimal.Decimal
	GoalGap       decimal.Decimal // Amount still needed to reach the goal
	GoalSet       bool
}

// GoalMet reports whether the balance has reached the savings goal.
func (s Summary) GoalMet() bool {
	return !s.GoalGap.IsPositive()
}

// Totals returns the income and expense sums of txns.
func Totals(txns []model.Transaction) (income, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, txn := range txns {
		switch txn.Type {
		case model.TransactionTypeIncome:
			income = income.Add(txn.Amount)
		case model.TransactionTypeExpense:
			expenses = expenses.Add(txn.Amount)
		}
	}
	return income, expenses
}

// Summarize computes totals, balance and savings goal progress.
func Summarize(txns []model.Transaction, savingsGoal decimal.Decimal) Summary {
	income, expenses := Totals(txns)
	balance := income.Add(expenses)

	return Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       balance,
		SavingsGoal:   savingsGoal,
		GoalGap:       savingsGoal.Sub(balance),
		GoalSet:       savingsGoal.IsPositive(),
	}
}

// Overspending describes the comparison behind an overspending warning.
type Overspending struct {
	Spent     decimal.Decimal // Expense magnitude
	Income    decimal.Decimal
	Allowance decimal.Decimal // Income scaled by the threshold
}

// CheckOverspending reports whether expenses exceed threshold times income.
// With zero income any expense triggers the warning.
func CheckOverspending(txns []model.Transaction, threshold decimal.Decimal) (Overspending, bool) {
	income, expenses := Totals(txns)

	o := Overspending{
		Spent:     expenses.Abs(),
		Income:    income,
		Allowance: income.Mul(threshold),
	}
	return o, o.Spent.GreaterThan(o.Allowance)
}
