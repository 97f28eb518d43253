package shell

import (
	"context"
	"fmt"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/export"
	"github.com/Veraticus/budget/internal/ledger"
	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/report"
)

func (s *Shell) addIncome(ctx context.Context) error {
	return s.addTransaction(ctx, model.TransactionTypeIncome, "Enter income description: ")
}

func (s *Shell) addExpense(ctx context.Context) error {
	return s.addTransaction(ctx, model.TransactionTypeExpense, "Enter expense description: ")
}

func (s *Shell) addTransaction(ctx context.Context, typ model.TransactionType, descPrompt string) error {
	description, err := s.prompter.ReadLine(ctx, descPrompt)
	if err != nil {
		return err
	}
	amount, err := s.prompter.ReadDecimal(ctx, "Enter amount: ")
	if err != nil {
		return err
	}
	category, err := s.prompter.ReadLine(ctx, "Enter category: ")
	if err != nil {
		return err
	}

	if typ == model.TransactionTypeIncome {
		s.ledger.AddIncome(description, amount, category)
		s.println(cli.FormatSuccess("Income added."))
	} else {
		s.ledger.AddExpense(description, amount, category)
		s.println(cli.FormatSuccess("Expense added."))
	}

	s.checkOverspending()
	return nil
}

func (s *Shell) checkOverspending() {
	o, over := report.CheckOverspending(s.ledger.Transactions(), s.threshold)
	if !over {
		return
	}
	s.println(cli.FormatWarning("Warning: You are overspending!"))
	s.println(cli.SubtitleStyle.Render(fmt.Sprintf("  Spent %s of %s allowed.",
		cli.FormatMoney(o.Spent), cli.FormatMoney(o.Allowance))))
}

func (s *Shell) viewSummary(_ context.Context) error {
	return RenderSummary(s.out, report.Summarize(s.ledger.Transactions(), s.ledger.SavingsGoal()))
}

func (s *Shell) viewTransactions(_ context.Context) error {
	txns := s.ledger.Transactions()
	if len(txns) == 0 {
		s.println(cli.FormatInfo("No transactions recorded yet."))
		return nil
	}

	s.println(cli.TitleStyle.Render("Transactions:"))
	s.printTransactions(txns)
	return nil
}

func (s *Shell) printTransactions(txns []model.Transaction) {
	for i, txn := range txns {
		s.printf("%d. %s - %s (%s) [Category: %s] %s\n",
			i+1,
			txn.Description,
			cli.StyleMoney(txn.Amount),
			txn.Type,
			txn.Category,
			cli.SubtitleStyle.Render(txn.Date.Format("2006-01-02")))
	}
}

func (s *Shell) setSavingsGoal(ctx context.Context) error {
	goal, err := s.prompter.ReadDecimal(ctx, "Enter savings goal amount: ")
	if err != nil {
		return err
	}
	if goal.IsNegative() {
		return common.NewUserError("Savings goal cannot be negative.", common.ErrInvalidInput)
	}

	s.ledger.SetSavingsGoal(goal)
	s.println(cli.FormatSuccess(fmt.Sprintf("Savings goal set to %s.", cli.FormatMoney(goal))))
	return nil
}

func (s *Shell) editTransaction(ctx context.Context) error {
	ordinal, err := s.prompter.ReadOrdinal(ctx, "Enter transaction number to edit: ")
	if err != nil {
		return err
	}
	if _, err := s.ledger.Transaction(ordinal); err != nil {
		return invalidNumber("transaction", err)
	}

	var edit ledger.TransactionEdit
	if edit.Description, err = s.prompter.ReadLine(ctx, "Enter new description: "); err != nil {
		return err
	}
	if edit.Amount, err = s.prompter.ReadDecimal(ctx, "Enter new amount: "); err != nil {
		return err
	}
	if edit.Category, err = s.prompter.ReadLine(ctx, "Enter new category: "); err != nil {
		return err
	}

	if _, err := s.ledger.EditTransaction(ordinal, edit); err != nil {
		return invalidNumber("transaction", err)
	}
	s.println(cli.FormatSuccess("Transaction updated."))
	return nil
}

func (s *Shell) deleteTransaction(ctx context.Context) error {
	ordinal, err := s.prompter.ReadOrdinal(ctx, "Enter transaction number to delete: ")
	if err != nil {
		return err
	}

	if _, err := s.ledger.DeleteTransaction(ordinal); err != nil {
		return invalidNumber("transaction", err)
	}
	s.println(cli.FormatSuccess("Transaction deleted."))
	return nil
}

func (s *Shell) searchTransactions(ctx context.Context) error {
	query, err := s.prompter.ReadLine(ctx, "Enter description or category to search: ")
	if err != nil {
		return err
	}

	results := s.ledger.Search(query)
	if len(results) == 0 {
		s.println(cli.FormatInfo("No matching transactions found."))
		return nil
	}

	s.println(cli.TitleStyle.Render("Search Results:"))
	s.printTransactions(results)
	return nil
}

func (s *Shell) exportCSV(ctx context.Context) error {
	name, err := s.prompter.ReadLine(ctx, "Enter the CSV file name (e.g., transactions.csv): ")
	if err != nil {
		return err
	}
	if name == "" {
		return common.NewUserError("A file name is required.", common.ErrInvalidInput)
	}

	if err := export.NewCSVExporter(name).Export(ctx, s.ledger.Data()); err != nil {
		return common.NewUserError(fmt.Sprintf("Could not export to %s.", name), err)
	}
	s.println(cli.FormatSuccess(fmt.Sprintf("Transactions exported to %s", name)))
	return nil
}
