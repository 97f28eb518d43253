// Package ledger holds the in-memory budget state and the operations that mutate it.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// ErrInvalidIndex is returned when an ordinal does not address an existing element.
var ErrInvalidIndex = errors.New("invalid index")

// Ledger owns the ordered collections of a single budget session.
// Elements are addressed by 1-based ordinals; position is the identity.
type Ledger struct {
	data *model.BudgetData
	now  func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used to timestamp new transactions.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New creates a ledger over data. A nil data starts from the empty state.
func New(data *model.BudgetData, opts ...Option) *Ledger {
	if data == nil {
		data = model.NewBudgetData()
	}
	data.Normalize()

	l := &Ledger{
		data: data,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Data returns the state backing the ledger, ready to be persisted.
func (l *Ledger) Data() *model.BudgetData {
	return l.data
}

// TransactionEdit holds the replacement fields for an existing transaction.
// Amount is a magnitude; the sign follows the transaction's type.
type TransactionEdit struct {
	Description string
	Category    string
	Amount      decimal.Decimal
}

// AddIncome appends an income transaction dated now.
func (l *Ledger) AddIncome(description string, amount decimal.Decimal, category string) model.Transaction {
	return l.addTransaction(model.TransactionTypeIncome, description, amount, category)
}

// AddExpense appends an expense transaction dated now. The amount is stored negative.
func (l *Ledger) AddExpense(description string, amount decimal.Decimal, category string) model.Transaction {
	return l.addTransaction(model.TransactionTypeExpense, description, amount, category)
}

func (l *Ledger) addTransaction(typ model.TransactionType, description string, amount decimal.Decimal, category string) model.Transaction {
	txn := model.Transaction{
		Description: description,
		Amount:      model.SignedAmount(typ, amount),
		Category:    category,
		Type:        typ,
		Date:        l.now(),
	}
	l.data.Transactions = append(l.data.Transactions, txn)
	return txn
}

// AppendTransactions adds already-built transactions, such as imported ones, in order.
func (l *Ledger) AppendTransactions(txns ...model.Transaction) {
	for _, txn := range txns {
		txn.Amount = model.SignedAmount(txn.Type, txn.Amount)
		l.data.Transactions = append(l.data.Transactions, txn)
	}
}

// Transactions returns the ledger's transactions in insertion order.
func (l *Ledger) Transactions() []model.Transaction {
	return l.data.Transactions
}

// Transaction returns the transaction at the given ordinal.
func (l *Ledger) Transaction(ordinal int) (model.Transaction, error) {
	idx, err := toIndex(ordinal, len(l.data.Transactions), "transaction")
	if err != nil {
		return model.Transaction{}, err
	}
	return l.data.Transactions[idx], nil
}

// EditTransaction replaces the description, amount and category of the transaction at ordinal.
// Type and date are kept.
func (l *Ledger) EditTransaction(ordinal int, edit TransactionEdit) (model.Transaction, error) {
	idx, err := toIndex(ordinal, len(l.data.Transactions), "transaction")
	if err != nil {
		return model.Transaction{}, err
	}

	txn := &l.data.Transactions[idx]
	txn.Description = edit.Description
	txn.Amount = model.SignedAmount(txn.Type, edit.Amount)
	txn.Category = edit.Category
	return *txn, nil
}

// DeleteTransaction removes the transaction at ordinal. Later transactions shift down.
func (l *Ledger) DeleteTransaction(ordinal int) (model.Transaction, error) {
	idx, err := toIndex(ordinal, len(l.data.Transactions), "transaction")
	if err != nil {
		return model.Transaction{}, err
	}

	removed := l.data.Transactions[idx]
	l.data.Transactions = removeAt(l.data.Transactions, idx)
	return removed, nil
}

// SavingsGoal returns the target balance.
func (l *Ledger) SavingsGoal() decimal.Decimal {
	return l.data.SavingsGoal
}

// SetSavingsGoal replaces the target balance.
func (l *Ledger) SetSavingsGoal(goal decimal.Decimal) {
	l.data.SavingsGoal = goal
}

// Search returns transactions whose description or category contains query.
func (l *Ledger) Search(query string) []model.Transaction {
	return Search(l.data.Transactions, query)
}

// toIndex maps a 1-based ordinal onto a slice index.
func toIndex(ordinal, length int, what string) (int, error) {
	idx := ordinal - 1
	if idx < 0 || idx >= length {
		return 0, fmt.Errorf("%w: %s number %d (have %d)", ErrInvalidIndex, what, ordinal, length)
	}
	return idx, nil
}

func removeAt[T any](items []T, idx int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}
