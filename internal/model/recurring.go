package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidFrequency is returned when a frequency name is not recognized.
var ErrInvalidFrequency = errors.New("invalid frequency")

// Frequency describes how often a recurring transaction repeats.
type Frequency string

// Recurrence frequencies.
const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
)

// Frequencies lists every supported frequency in display order.
var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

// ParseFrequency converts a case-insensitive name into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	name := strings.TrimSpace(s)
	for _, f := range Frequencies {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
}

// RecurringTransaction is a stored template for a repeating transaction.
// Templates are descriptive only and are never turned into ledger entries.
type RecurringTransaction struct {
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Frequency   Frequency       `json:"frequency"`
	Amount      decimal.Decimal `json:"amount"`
}
