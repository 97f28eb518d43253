package ledger

import (
	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// AddCategory appends a category. Use model.NoLimit for an unbounded category.
func (l *Ledger) AddCategory(name string, limit decimal.NullDecimal) model.Category {
	cat := model.Category{Name: name, SpendingLimit: limit}
	l.data.Categories = append(l.data.Categories, cat)
	return cat
}

// Categories returns the categories in insertion order.
func (l *Ledger) Categories() []model.Category {
	return l.data.Categories
}

// Category returns the category at the given ordinal.
func (l *Ledger) Category(ordinal int) (model.Category, error) {
	idx, err := toIndex(ordinal, len(l.data.Categories), "category")
	if err != nil {
		return model.Category{}, err
	}
	return l.data.Categories[idx], nil
}

// EditCategory replaces the name and limit of the category at ordinal.
func (l *Ledger) EditCategory(ordinal int, name string, limit decimal.NullDecimal) (model.Category, error) {
	idx, err := toIndex(ordinal, len(l.data.Categories), "category")
	if err != nil {
		return model.Category{}, err
	}

	l.data.Categories[idx] = model.Category{Name: name, SpendingLimit: limit}
	return l.data.Categories[idx], nil
}

// DeleteCategory removes the category at ordinal. Transactions keep their category text.
func (l *Ledger) DeleteCategory(ordinal int) (model.Category, error) {
	idx, err := toIndex(ordinal, len(l.data.Categories), "category")
	if err != nil {
		return model.Category{}, err
	}

	removed := l.data.Categories[idx]
	l.data.Categories = removeAt(l.data.Categories, idx)
	return removed, nil
}

// AddRecurring appends a recurring transaction template. The amount is kept as entered.
func (l *Ledger) AddRecurring(description string, amount decimal.Decimal, category string, freq model.Frequency) model.RecurringTransaction {
	rt := model.RecurringTransaction{
		Description: description,
		Amount:      amount,
		Category:    category,
		Frequency:   freq,
	}
	l.data.RecurringTransactions = append(l.data.RecurringTransactions, rt)
	return rt
}

// Recurring returns the recurring templates in insertion order.
func (l *Ledger) Recurring() []model.RecurringTransaction {
	return l.data.RecurringTransactions
}

// DeleteRecurring removes the recurring template at ordinal.
func (l *Ledger) DeleteRecurring(ordinal int) (model.RecurringTransaction, error) {
	idx, err := toIndex(ordinal, len(l.data.RecurringTransactions), "recurring transaction")
	if err != nil {
		return model.RecurringTransaction{}, err
	}

	removed := l.data.RecurringTransactions[idx]
	l.data.RecurringTransactions = removeAt(l.data.RecurringTransactions, idx)
	return removed, nil
}

// AddProfile appends a user profile. The current user is unchanged.
func (l *Ledger) AddProfile(userName string) model.UserProfile {
	p := model.UserProfile{UserName: userName}
	l.data.UserProfiles = append(l.data.UserProfiles, p)
	return p
}

// Profiles returns the user profiles in insertion order.
func (l *Ledger) Profiles() []model.UserProfile {
	return l.data.UserProfiles
}

// SwitchProfile makes the profile at ordinal the current user.
func (l *Ledger) SwitchProfile(ordinal int) (model.UserProfile, error) {
	idx, err := toIndex(ordinal, len(l.data.UserProfiles), "user profile")
	if err != nil {
		return model.UserProfile{}, err
	}

	l.data.CurrentUser = l.data.UserProfiles[idx]
	return l.data.CurrentUser, nil
}

// CurrentUser returns the active profile. It is empty until a profile is switched to.
func (l *Ledger) CurrentUser() model.UserProfile {
	return l.data.CurrentUser
}
