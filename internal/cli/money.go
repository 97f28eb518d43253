package cli

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount as dollars with thousands separators,
// e.g. "$1,234.56" or "-$900.00".
func FormatMoney(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// StyleMoney renders an amount colored by its sign.
func StyleMoney(amount decimal.Decimal) string {
	s := FormatMoney(amount)
	if amount.IsNegative() {
		return ExpenseStyle.Render(s)
	}
	return IncomeStyle.Render(s)
}
