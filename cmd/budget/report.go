package main

import (
	"github.com/Veraticus/budget/internal/ledger"
	"github.com/Veraticus/budget/internal/report"
	"github.com/Veraticus/budget/internal/shell"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print spending reports",
		Example: `  # Income and expenses per month
  budget report monthly

  # Spending against category limits
  budget report categories`,
	}

	cmd.AddCommand(reportSubCmd("monthly", "Totals per calendar month", func(cmd *cobra.Command, l *ledger.Ledger) error {
		return shell.RenderPeriods(cmd.OutOrStdout(), report.Monthly(l.Transactions()))
	}))
	cmd.AddCommand(reportSubCmd("yearly", "Totals per calendar year", func(cmd *cobra.Command, l *ledger.Ledger) error {
		return shell.RenderPeriods(cmd.OutOrStdout(), report.Yearly(l.Transactions()))
	}))
	cmd.AddCommand(reportSubCmd("categories", "Spending against each category's limit", func(cmd *cobra.Command, l *ledger.Ledger) error {
		return shell.RenderCategoryUsage(cmd.OutOrStdout(), report.CategorySpending(l.Transactions(), l.Categories()))
	}))

	return cmd
}

func reportSubCmd(use, short string, render func(*cobra.Command, *ledger.Ledger) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, l, err := openLedger(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			return render(cmd, l)
		},
	}
}
