package fixtures

import (
	"testing"
	"time"

	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// Builder provides a fluent interface for constructing test budget data.
type Builder struct {
	t    *testing.T
	data *model.BudgetData
}

// NewBuilder creates a builder over an empty budget.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{
		t:    t,
		data: model.NewBudgetData(),
	}
}

// WithIncome appends an income transaction.
func (b *Builder) WithIncome(description, amount, category string, date time.Time) *Builder {
	b.t.Helper()
	return b.withTransaction(model.TransactionTypeIncome, description, amount, category, date)
}

// WithExpense appends an expense transaction. The amount is given as a magnitude.
func (b *Builder) WithExpense(description, amount, category string, date time.Time) *Builder {
	b.t.Helper()
	return b.withTransaction(model.TransactionTypeExpense, description, amount, category, date)
}

func (b *Builder) withTransaction(typ model.TransactionType, description, amount, category string, date time.Time) *Builder {
	b.t.Helper()
	b.data.Transactions = append(b.data.Transactions, model.Transaction{
		Description: description,
		Amount:      model.SignedAmount(typ, Money(b.t, amount)),
		Category:    category,
		Type:        typ,
		Date:        date,
	})
	return b
}

// WithCategory appends a category. An empty limit means unbounded.
func (b *Builder) WithCategory(name, limit string) *Builder {
	b.t.Helper()
	cat := model.Category{Name: name, SpendingLimit: model.NoLimit}
	if limit != "" {
		cat.SpendingLimit = model.LimitOf(Money(b.t, limit))
	}
	b.data.Categories = append(b.data.Categories, cat)
	return b
}

// WithRecurring appends a recurring template.
func (b *Builder) WithRecurring(description, amount, category string, freq model.Frequency) *Builder {
	b.t.Helper()
	b.data.RecurringTransactions = append(b.data.RecurringTransactions, model.RecurringTransaction{
		Description: description,
		Amount:      Money(b.t, amount),
		Category:    category,
		Frequency:   freq,
	})
	return b
}

// WithProfile appends a user profile.
func (b *Builder) WithProfile(userName string) *Builder {
	b.data.UserProfiles = append(b.data.UserProfiles, model.UserProfile{UserName: userName})
	return b
}

// WithCurrentUser sets the active profile.
func (b *Builder) WithCurrentUser(userName string) *Builder {
	b.data.CurrentUser = model.UserProfile{UserName: userName}
	return b
}

// WithSavingsGoal sets the savings goal.
func (b *Builder) WithSavingsGoal(goal string) *Builder {
	b.t.Helper()
	b.data.SavingsGoal = Money(b.t, goal)
	return b
}

// Build returns the assembled budget data.
func (b *Builder) Build() *model.BudgetData {
	return b.data
}

// Money parses a decimal literal or fails the test.
func Money(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid money literal %q: %v", s, err)
	}
	return d
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Jan returns midnight UTC on the given January day.
func Jan(year, day int) time.Time {
	return Date(year, time.January, day)
}

// FixedClock returns a clock that always reports at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// StandardBudget is a small ledger spanning two years and three months,
// with months interleaved so first-seen order differs from calendar order.
func StandardBudget(t *testing.T) *model.BudgetData {
	t.Helper()
	return NewBuilder(t).
		WithIncome("Paycheck", "3000", "Salary", Date(2024, time.February, 1)).
		WithExpense("Rent", "1200", "Housing", Date(2024, time.February, 3)).
		WithExpense("Groceries, weekly", "85.40", "Food", Date(2024, time.January, 20)).
		WithIncome("Bonus", "500", "Salary", Date(2023, time.December, 15)).
		WithExpense("Coffee", "4.25", "Food", Date(2024, time.February, 10)).
		WithCategory("Housing", "1500").
		WithCategory("Food", "50").
		WithCategory("Fun", "").
		WithRecurring("Netflix", "15.99", "Entertainment", model.FrequencyMonthly).
		WithProfile("alex").
		WithProfile("sam").
		WithCurrentUser("alex").
		WithSavingsGoal("5000").
		Build()
}
