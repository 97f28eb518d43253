// Package shell runs the interactive numbered-menu session over a ledger.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/ledger"
	"github.com/Veraticus/budget/internal/report"
	"github.com/Veraticus/budget/internal/service"
	"github.com/shopspring/decimal"
)

// errExit ends the session after a successful save.
var errExit = errors.New("exit requested")

// Shell owns one interactive session: the ledger being edited, where it is
// saved, and the terminal it talks to.
type Shell struct {
	ledger    *ledger.Ledger
	store     service.Storage
	prompter  *cli.Prompter
	out       io.Writer
	threshold decimal.Decimal
}

// Option configures a Shell.
type Option func(*Shell)

// WithThreshold sets the share of income expenses may reach before the
// overspending warning is shown.
func WithThreshold(threshold decimal.Decimal) Option {
	return func(s *Shell) {
		s.threshold = threshold
	}
}

// New creates a shell. Output goes to the prompter's writer.
func New(l *ledger.Ledger, store service.Storage, prompter *cli.Prompter, opts ...Option) *Shell {
	s := &Shell{
		ledger:    l,
		store:     store,
		prompter:  prompter,
		out:       prompter.Writer(),
		threshold: report.DefaultOverspendingThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type menuItem struct {
	label  string
	action func(context.Context) error
}

func (s *Shell) mainMenu() []menuItem {
	return []menuItem{
		{"Add Income", s.addIncome},
		{"Add Expense", s.addExpense},
		{"View Summary", s.viewSummary},
		{"View Transactions", s.viewTransactions},
		{"Set Savings Goal", s.setSavingsGoal},
		{"Edit Transaction", s.editTransaction},
		{"Delete Transaction", s.deleteTransaction},
		{"Generate Reports", s.reportsMenu},
		{"Search Transactions", s.searchTransactions},
		{"Export Transactions to CSV", s.exportCSV},
		{"Manage Categories", s.categoriesMenu},
		{"Manage Recurring Transactions", s.recurringMenu},
		{"Manage User Profiles", s.profilesMenu},
		{"Save and Exit", s.saveAndExit},
	}
}

// Run shows the main menu until the user saves and exits, input ends, or ctx is canceled.
// Reaching the end of input leaves the data file untouched.
func (s *Shell) Run(ctx context.Context) error {
	menu := s.mainMenu()

	for {
		s.printMainMenu(menu)

		choice, err := s.prompter.ReadLine(ctx, "Choose an option: ")
		if err != nil {
			return s.endOfInput(ctx, err)
		}

		item, ok := pick(menu, choice)
		if !ok {
			s.println(cli.FormatError("Invalid option. Please try again."))
			continue
		}

		err = item.action(ctx)
		switch {
		case err == nil:
		case errors.Is(err, errExit):
			return nil
		case errors.Is(err, io.EOF), errors.Is(err, cli.ErrInputCancelled):
			return s.endOfInput(ctx, err)
		default:
			s.reportError(err)
		}
		s.println("")
	}
}

func (s *Shell) endOfInput(ctx context.Context, err error) error {
	if errors.Is(err, cli.ErrInputCancelled) {
		slog.Warn("session interrupted; unsaved changes discarded")
		return ctx.Err()
	}
	if errors.Is(err, io.EOF) {
		slog.Warn("input closed; exiting without saving")
		return nil
	}
	return err
}

// reportError shows a recoverable failure and keeps the session going.
func (s *Shell) reportError(err error) {
	var userErr *common.UserError
	switch {
	case errors.As(err, &userErr):
		s.println(cli.FormatError(userErr.UserMessage))
	case errors.Is(err, cli.ErrInvalidInput):
		slog.Debug("rejected input", "error", err)
		s.println(cli.FormatError("Invalid input. Nothing was changed."))
	default:
		slog.Error("menu action failed", "error", err)
		s.println(cli.FormatError(err.Error()))
	}
}

func (s *Shell) printMainMenu(menu []menuItem) {
	title := "Budget Tracker"
	if user := s.ledger.CurrentUser().UserName; user != "" {
		title += " (" + user + ")"
	}
	s.println(cli.FormatTitle(title))
	for i, item := range menu {
		s.printf("%d. %s\n", i+1, item.label)
	}
}

// subMenu shows a numbered sub-menu with a 0 Back entry. An unknown choice
// redisplays the same sub-menu.
func (s *Shell) subMenu(ctx context.Context, title string, items []menuItem) error {
	for {
		s.println(cli.TitleStyle.Render(title + ":"))
		for i, item := range items {
			s.printf("%d. %s\n", i+1, item.label)
		}
		s.println("0. Back")

		choice, err := s.prompter.ReadLine(ctx, "Choose an option: ")
		if err != nil {
			return err
		}
		if choice == "0" {
			return nil
		}

		item, ok := pick(items, choice)
		if !ok {
			s.println(cli.FormatError("Invalid option."))
			continue
		}
		return item.action(ctx)
	}
}

func pick(items []menuItem, choice string) (menuItem, bool) {
	choice = strings.TrimSpace(choice)
	for i, item := range items {
		if choice == fmt.Sprint(i+1) {
			return item, true
		}
	}
	return menuItem{}, false
}

func (s *Shell) saveAndExit(ctx context.Context) error {
	if err := s.store.Save(ctx, s.ledger.Data()); err != nil {
		common.LogError(err, "failed to save budget data", common.Fields{
			"transactions": len(s.ledger.Transactions()),
		})
		return common.NewUserError("Could not save your data; nothing was lost, please try again.", err)
	}

	s.println(cli.FormatSuccess("Data saved. Goodbye!"))
	return errExit
}

func (s *Shell) println(line string) {
	if _, err := fmt.Fprintln(s.out, line); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

func (s *Shell) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(s.out, format, args...); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

// invalidNumber turns an out-of-range ordinal into the message shown to the user.
func invalidNumber(thing string, err error) error {
	if errors.Is(err, ledger.ErrInvalidIndex) {
		return common.NewUserError(fmt.Sprintf("Invalid %s number.", thing), err)
	}
	return err
}
