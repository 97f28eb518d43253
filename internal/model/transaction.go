// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The persisted file stores money as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrInvalidTransactionType is returned when a transaction type name is not recognized.
var ErrInvalidTransactionType = errors.New("invalid transaction type")

// TransactionType indicates whether a transaction adds or removes money.
type TransactionType string

const (
	// TransactionTypeIncome represents money coming in.
	TransactionTypeIncome TransactionType = "Income"
	// TransactionTypeExpense represents money going out. Expense amounts are stored negative.
	TransactionTypeExpense TransactionType = "Expense"
)

// ParseTransactionType converts a case-insensitive name into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return TransactionTypeIncome, nil
	case "expense":
		return TransactionTypeExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
	}
}

// Transaction represents a single ledger entry.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"` // Free text, not checked against the category list
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
}

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// SignedAmount applies the sign convention for the given type to a magnitude.
// Income is stored as a non-negative value and expenses as a non-positive one.
func SignedAmount(typ TransactionType, amount decimal.Decimal) decimal.Decimal {
	magnitude := amount.Abs()
	if typ == TransactionTypeExpense {
		return magnitude.Neg()
	}
	return magnitude
}
