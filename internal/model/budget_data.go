package model

import "github.com/shopspring/decimal"

// BudgetData is the complete persisted state of the tracker.
type BudgetData struct {
	CurrentUser           UserProfile            `json:"currentUser"`
	Transactions          []Transaction          `json:"transactions"`
	Categories            []Category             `json:"categories"`
	RecurringTransactions []RecurringTransaction `json:"recurringTransactions"`
	UserProfiles          []UserProfile          `json:"userProfiles"`
	SavingsGoal           decimal.Decimal        `json:"savingsGoal"`
}

// NewBudgetData returns the empty first-run state.
func NewBudgetData() *BudgetData {
	return &BudgetData{
		Transactions:          []Transaction{},
		Categories:            []Category{},
		RecurringTransactions: []RecurringTransaction{},
		UserProfiles:          []UserProfile{},
		SavingsGoal:           decimal.Zero,
	}
}

// Normalize replaces missing collections with empty ones after a load.
func (d *BudgetData) Normalize() {
	if d.Transactions == nil {
		d.Transactions = []Transaction{}
	}
	if d.Categories == nil {
		d.Categories = []Category{}
	}
	if d.RecurringTransactions == nil {
		d.RecurringTransactions = []RecurringTransaction{}
	}
	if d.UserProfiles == nil {
		d.UserProfiles = []UserProfile{}
	}
}
