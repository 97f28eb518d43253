// Package storage provides the data persistence layer for the budget application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/budget/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidRecurring   = errors.New("invalid recurring transaction")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateBudgetData checks that the enum fields will round-trip.
func validateBudgetData(data *model.BudgetData) error {
	if data == nil {
		return fmt.Errorf("%w: budget data", ErrNilParameter)
	}

	for i, txn := range data.Transactions {
		switch txn.Type {
		case model.TransactionTypeIncome, model.TransactionTypeExpense:
		default:
			return fmt.Errorf("%w: transaction %d has type %q", ErrInvalidTransaction, i+1, txn.Type)
		}
	}

	for i, rt := range data.RecurringTransactions {
		if _, err := model.ParseFrequency(string(rt.Frequency)); err != nil {
			return fmt.Errorf("%w: recurring transaction %d: %v", ErrInvalidRecurring, i+1, err)
		}
	}

	return nil
}
