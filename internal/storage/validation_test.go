package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/testutil/fixtures"
	"github.com/stretchr/testify/assert"
)

func TestValidateContext(t *testing.T) {
	assert.NoError(t, validateContext(context.Background()))
	//nolint:staticcheck // testing nil context handling
	assert.ErrorIs(t, validateContext(nil), ErrNilContext)
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "budget.json"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace", input: " \t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.input, "path")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyString)
				assert.Contains(t, err.Error(), "path")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateBudgetData(t *testing.T) {
	tests := []struct {
		mutate  func(*model.BudgetData)
		wantErr error
		name    string
	}{
		{
			name:   "standard budget is valid",
			mutate: func(*model.BudgetData) {},
		},
		{
			name: "unknown transaction type",
			mutate: func(d *model.BudgetData) {
				d.Transactions[0].Type = "Transfer"
			},
			wantErr: ErrInvalidTransaction,
		},
		{
			name: "unknown frequency",
			mutate: func(d *model.BudgetData) {
				d.RecurringTransactions[0].Frequency = "Hourly"
			},
			wantErr: ErrInvalidRecurring,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := fixtures.StandardBudget(t)
			tt.mutate(data)

			err := validateBudgetData(data)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.ErrorIs(t, validateBudgetData(nil), ErrNilParameter)
}
