package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out), &out
}

func TestPrompter_ReadLine(t *testing.T) {
	p, out := newTestPrompter("  Paycheck  \n")

	got, err := p.ReadLine(context.Background(), "Enter income description: ")
	require.NoError(t, err)
	assert.Equal(t, "Paycheck", got)
	assert.Contains(t, out.String(), "Enter income description: ")

	_, err = p.ReadLine(context.Background(), "again: ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompter_ReadDecimal(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "1000", want: "1000"},
		{input: "85.40", want: "85.4"},
		{input: "$1,234.56", want: "1234.56"},
		{input: "-12", want: "-12"},
		{input: "twelve", wantErr: true},
		{input: "", wantErr: true},
		{input: "0.12345678", want: "0.12345678"},
		{input: "0.123456789", wantErr: true},
		{input: "1e900000000", wantErr: true},
		{input: "1E-900000000", wantErr: true},
		{input: "2.5e3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, _ := newTestPrompter(tt.input + "\n")

			got, err := p.ReadDecimal(context.Background(), "Enter amount: ")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestPrompter_ReadOptionalDecimal(t *testing.T) {
	ctx := context.Background()

	p, _ := newTestPrompter("\n250\nlots\n")

	blank, err := p.ReadOptionalDecimal(ctx, "limit: ")
	require.NoError(t, err)
	assert.False(t, blank.Valid)

	set, err := p.ReadOptionalDecimal(ctx, "limit: ")
	require.NoError(t, err)
	assert.True(t, set.Valid)
	assert.True(t, decimal.NewFromInt(250).Equal(set.Decimal))

	_, err = p.ReadOptionalDecimal(ctx, "limit: ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPrompter_ReadOrdinal(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPrompter("3\nthird\n")

	n, err := p.ReadOrdinal(ctx, "Enter transaction number to edit: ")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = p.ReadOrdinal(ctx, "Enter transaction number to edit: ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPrompter_ReadFrequency(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPrompter("weekly\nfortnightly\n")

	freq, err := p.ReadFrequency(ctx, "Enter frequency (Daily, Weekly, Monthly): ")
	require.NoError(t, err)
	assert.Equal(t, model.FrequencyWeekly, freq)

	_, err = p.ReadFrequency(ctx, "Enter frequency (Daily, Weekly, Monthly): ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPrompter_Cancelled(t *testing.T) {
	p, _ := newTestPrompter("1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ReadLine(ctx, "Choose an option: ")
	assert.ErrorIs(t, err, ErrInputCancelled)
}
