package ledger

import (
	"testing"

	"github.com/Veraticus/budget/internal/testutil/fixtures"
	"github.com/stretchr/testify/assert"
)

func TestSearch(t *testing.T) {
	txns := fixtures.StandardBudget(t).Transactions

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "description match", query: "rent", want: []string{"Rent"}},
		{name: "category match ignores case", query: "FOOD", want: []string{"Groceries, weekly", "Coffee"}},
		{name: "category only", query: "sal", want: []string{"Paycheck", "Bonus"}},
		{name: "punctuation in description", query: "s, w", want: []string{"Groceries, weekly"}},
		{name: "no match", query: "travel", want: []string{}},
		{name: "empty query matches all", query: "", want: []string{"Paycheck", "Rent", "Groceries, weekly", "Bonus", "Coffee"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(txns, tt.query)
			descriptions := make([]string, 0, len(got))
			for _, txn := range got {
				descriptions = append(descriptions, txn.Description)
			}
			assert.Equal(t, tt.want, descriptions)
		})
	}
}

func TestLedgerSearch_KeepsOrder(t *testing.T) {
	l := newTestLedger(t, fixtures.StandardBudget(t))

	got := l.Search("e")
	assert.Len(t, got, 4)
	assert.Equal(t, "Paycheck", got[0].Description)
	assert.Equal(t, "Coffee", got[3].Description)
}
