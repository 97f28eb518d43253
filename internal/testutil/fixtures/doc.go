// Package fixtures provides test infrastructure for building budget state.
// It offers a fluent API for seeding ledgers with dated transactions,
// categories, recurring templates and profiles, plus equality helpers that
// compare money by value rather than by decimal representation.
//
// Example usage:
//
//	data := fixtures.NewBuilder(t).
//		WithIncome("Paycheck", "1000", "Salary", fixtures.Jan(2024, 5)).
//		WithExpense("Rent", "900", "Housing", fixtures.Jan(2024, 6)).
//		WithCategory("Housing", "1200").
//		Build()
package fixtures
