package main

import (
	"fmt"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/export"
	"github.com/Veraticus/budget/internal/service"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to a file",
		Example: `  budget export csv transactions.csv
  budget export xlsx ~/Documents/budget.xlsx`,
	}

	cmd.AddCommand(exportSubCmd("csv", "Export transactions as CSV", func(path string) service.Exporter {
		return export.NewCSVExporter(path)
	}))
	cmd.AddCommand(exportSubCmd("xlsx", "Export transactions and a summary sheet as an Excel workbook", func(path string) service.Exporter {
		return export.NewXLSXExporter(path)
	}))

	return cmd
}

func exportSubCmd(format, short string, newExporter func(path string) service.Exporter) *cobra.Command {
	return &cobra.Command{
		Use:   format + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, l, err := openLedger(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			path := args[0]
			if err := newExporter(path).Export(ctx, l.Data()); err != nil {
				return fmt.Errorf("failed to export %s: %w", format, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Exported %d transactions to %s", len(l.Transactions()), path)))
			return nil
		},
	}
}
