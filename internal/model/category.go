package model

import "github.com/shopspring/decimal"

// Category represents a named spending bucket with an optional limit.
type Category struct {
	Name string `json:"name"`
	// SpendingLimit is null when the category has no limit.
	SpendingLimit decimal.NullDecimal `json:"spendingLimit"`
}

// NoLimit is the limit value for a category without a spending cap.
var NoLimit = decimal.NullDecimal{}

// LimitOf wraps a concrete amount as a spending limit.
func LimitOf(amount decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(amount)
}

// Unbounded reports whether the category has no spending limit.
func (c Category) Unbounded() bool {
	return !c.SpendingLimit.Valid
}
