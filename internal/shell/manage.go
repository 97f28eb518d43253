package shell

import (
	"context"
	"fmt"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/model"
)

func (s *Shell) categoriesMenu(ctx context.Context) error {
	return s.subMenu(ctx, "Manage Categories", []menuItem{
		{"Add Category", s.addCategory},
		{"View Categories", s.viewCategories},
		{"Edit Category", s.editCategory},
		{"Delete Category", s.deleteCategory},
	})
}

func (s *Shell) addCategory(ctx context.Context) error {
	name, err := s.prompter.ReadLine(ctx, "Enter category name: ")
	if err != nil {
		return err
	}
	limit, err := s.prompter.ReadOptionalDecimal(ctx, "Enter spending limit (optional, press Enter to skip): ")
	if err != nil {
		return err
	}

	s.ledger.AddCategory(name, limit)
	s.println(cli.FormatSuccess("Category added."))
	return nil
}

func (s *Shell) viewCategories(_ context.Context) error {
	cats := s.ledger.Categories()
	if len(cats) == 0 {
		s.println(cli.FormatInfo("No categories defined."))
		return nil
	}

	s.println(cli.TitleStyle.Render("Categories:"))
	for i, c := range cats {
		limit := "none"
		if !c.Unbounded() {
			limit = cli.FormatMoney(c.SpendingLimit.Decimal)
		}
		s.printf("%d. %s - Limit: %s\n", i+1, c.Name, limit)
	}
	return nil
}

func (s *Shell) editCategory(ctx context.Context) error {
	ordinal, err := s.prompter.ReadOrdinal(ctx, "Enter category number to edit: ")
	if err != nil {
		return err
	}
	if _, err := s.ledger.Category(ordinal); err != nil {
		return invalidNumber("category", err)
	}

	name, err := s.prompter.ReadLine(ctx, "Enter new category name: ")
	if err != nil {
		return err
	}
	limit, err := s.prompter.ReadOptionalDecimal(ctx, "Enter new spending limit (optional, press Enter to skip): ")
	if err != nil {
		return err
	}

	if _, err := s.ledger.EditCategory(ordinal, name, limit); err != nil {
		return invalidNumber("category", err)
	}
	s.println(cli.FormatSuccess("Category updated."))
	return nil
}

func (s *Shell) deleteCategory(ctx context.Context) error {
	ordinal, err := s.prompter.ReadOrdinal(ctx, "Enter category number to delete: ")
	if err != nil {
		return err
	}

	if _, err := s.ledger.DeleteCategory(ordinal); err != nil {
		return invalidNumber("category", err)
	}
	s.println(cli.FormatSuccess("Category deleted."))
	return nil
}

func (s *Shell) recurringMenu(ctx context.Context) error {
	return s.subMenu(ctx, "Manage Recurring Transactions", []menuItem{
		{"Add Recurring Transaction", s.addRecurring},
		{"View Recurring Transactions", s.viewRecurring},
		{"Delete Recurring Transaction", s.deleteRecurring},
	})
}

func (s *Shell) addRecurring(ctx context.Context) error {
	description, err := s.prompter.ReadLine(ctx, "Enter transaction description: ")
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
	freq, err := s.prompter.ReadFrequency(ctx, "Enter frequency (Daily, Weekly, Monthly): ")
	if err != nil {
		return err
	}

	s.ledger.AddRecurring(description, amount, category, freq)
	s.println(cli.FormatSuccess("Recurring transaction added."))
	return nil
}

func (s *Shell) viewRecurring(_ context.Context) error {
	items := s.ledger.Recurring()
	if len(items) == 0 {
		s.println(cli.FormatInfo("No recurring transactions defined."))
		return nil
	}

	s.println(cli.TitleStyle.Render("Recurring Transactions:"))
	for i, rt := range items {
		s.printf("%d. %s - %s (%s) [Category: %s]\n",
			i+1, rt.Description, cli.FormatMoney(rt.Amount), rt.Frequency, rt.Category)
	}
	return nil
}

func (s *Shell) deleteRecurring(ctx context.Context) error {
	ordinal, err := s.prompter.ReadOrdinal(ctx, "Enter recurring transaction number to delete: ")
	if err != nil {
		return err
	}

	if _, err := s.ledger.DeleteRecurring(ordinal); err != nil {
		return invalidNumber("recurring transaction", err)
	}
	s.println(cli.FormatSuccess("Recurring transaction deleted."))
	return nil
}

func (s *Shell) profilesMenu(ctx context.Context) error {
	return s.subMenu(ctx, "Manage User Profiles", []menuItem{
		{"Add User Profile", s.addProfile},
		{"View User Profiles", s.viewProfiles},
		{"Switch User Profile", s.switchProfile},
	})
}

func (s *Shell) addProfile(ctx context.Context) error {
	name, err := s.prompter.ReadLine(ctx, "Enter user name: ")
	if err != nil {
		return err
	}

	s.ledger.AddProfile(name)
	s.println(cli.FormatSuccess("User profile added."))
	return nil
}

func (s *Shell) viewProfiles(_ context.Context) error {
	profiles := s.ledger.Profiles()
	if len(profiles) == 0 {
		s.println(cli.FormatInfo("No user profiles defined."))
		return nil
	}

	current := s.ledger.CurrentUser()
	s.println(cli.TitleStyle.Render("User Profiles:"))
	for i, p := range profiles {
		marker := ""
		if p == current {
			marker = " " + cli.SuccessStyle.Render("(current)")
		}
		s.printf("%d. %s%s\n", i+1, p.UserName, marker)
	}
	return nil
}

func (s *Shell) switchProfile(ctx context.Context) error {
	ordinal, err := s.prompter.ReadOrdinal(ctx, "Enter user profile number to switch: ")
	if err != nil {
		return err
	}

	var p model.UserProfile
	if p, err = s.ledger.SwitchProfile(ordinal); err != nil {
		return invalidNumber("user profile", err)
	}
	s.println(cli.FormatSuccess(fmt.Sprintf("Switched to user profile: %s", p.UserName)))
	return nil
}
