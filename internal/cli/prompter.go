package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when typed input cannot be parsed.
var ErrInvalidInput = fmt.Errorf("%w: could not parse value", common.ErrInvalidInput)

// Prompter reads answers to prompts one line at a time.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewPrompter creates a prompter with the given reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Writer returns the output the prompter writes to.
func (p *Prompter) Writer() io.Writer {
	return p.writer
}

// ReadLine shows prompt and returns the trimmed answer.
// It returns io.EOF when input is exhausted and ErrInputCancelled when ctx is done.
func (p *Prompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return line, nil
}

// ReadDecimal reads an amount such as "1200" or "85.40".
func (p *Prompter) ReadDecimal(ctx context.Context, prompt string) (decimal.Decimal, error) {
	line, err := p.ReadLine(ctx, prompt)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return parseDecimal(line)
}

// ReadOptionalDecimal reads an amount where a blank answer means unset.
func (p *Prompter) ReadOptionalDecimal(ctx context.Context, prompt string) (decimal.NullDecimal, error) {
	line, err := p.ReadLine(ctx, prompt)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	if line == "" {
		return decimal.NullDecimal{}, nil
	}

	d, err := parseDecimal(line)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// ReadOrdinal reads a whole number used to pick a list element.
// Range checking is left to the caller.
func (p *Prompter) ReadOrdinal(ctx context.Context, prompt string) (int, error) {
	line, err := p.ReadLine(ctx, prompt)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, line)
	}
	return n, nil
}

// ReadFrequency reads one of Daily, Weekly or Monthly, ignoring case.
func (p *Prompter) ReadFrequency(ctx context.Context, prompt string) (model.Frequency, error) {
	line, err := p.ReadLine(ctx, prompt)
	if err != nil {
		return "", err
	}

	freq, err := model.ParseFrequency(line)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return freq, nil
}

// maxDecimalPlaces bounds the scale of typed amounts.
const maxDecimalPlaces = 8

func parseDecimal(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}
	// Amounts are typed in plain notation only.
	if strings.ContainsAny(cleaned, "eE") {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not an amount", ErrInvalidInput, s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not an amount", ErrInvalidInput, s)
	}
	if d.Exponent() < -maxDecimalPlaces {
		return decimal.Decimal{}, fmt.Errorf("%w: %q has more than %d decimal places", ErrInvalidInput, s, maxDecimalPlaces)
	}
	return d, nil
}
