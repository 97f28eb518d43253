package main

import (
	"github.com/Veraticus/budget/internal/report"
	"github.com/Veraticus/budget/internal/shell"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show total income, expenses, balance and savings goal progress",
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

			return shell.RenderSummary(cmd.OutOrStdout(), report.Summarize(l.Transactions(), l.SavingsGoal()))
		},
	}
}
