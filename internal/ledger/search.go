package ledger

import (
	"strings"

	"github.com/Veraticus/budget/internal/model"
)

// Search returns the transactions whose description or category contains query,
// ignoring case, in their original order. An empty query matches everything.
func Search(txns []model.Transaction, query string) []model.Transaction {
	q := strings.ToLower(query)

	results := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if strings.Contains(strings.ToLower(txn.Description), q) ||
			strings.Contains(strings.ToLower(txn.Category), q) {
			results = append(results, txn)
		}
	}
	return results
}
