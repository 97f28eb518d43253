// Package service defines the interfaces between the budget core and its collaborators.
package service

import (
	"context"

	"github.com/Veraticus/budget/internal/model"
)

// Storage persists the complete budget state as one snapshot.
type Storage interface {
	// Load returns the saved state, or nil with no error when nothing has been saved yet.
	Load(ctx context.Context) (*model.BudgetData, error)
	// Save replaces the saved state with data.
	Save(ctx context.Context, data *model.BudgetData) error
	Close() error
}

// Exporter writes the ledger to an external file format.
type Exporter interface {
	Export(ctx context.Context, data *model.BudgetData) error
}
