package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/config"
	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/ofx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var errNoImportFiles = errors.New("no files found to import")

type importedFile struct {
	name     string
	found    int
	accounts []string
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Credits are recorded as income and debits as expenses. Transactions already in
the ledger (same date, amount and description) are skipped.`,
		Example: `  # Import a single file
  budget import ~/Downloads/checking_jan_2024.qfx

  # Import every QFX file in a directory
  budget import ~/Downloads/*.qfx

  # Preview without saving
  budget import --dry-run statement.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "n", false, "Preview import without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	files, err := expandImportPatterns(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, l, err := openLedger(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	slog.Info("Importing OFX files", "file_count", len(files), "dry_run", dryRun)

	parser := ofx.NewParser()
	var parsed []model.Transaction
	var results []importedFile

	for _, path := range files {
		stmt, err := parseOFXFile(ctx, parser, path)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("Failed to import file", "file", path, "error", err)
			continue
		}
		if len(stmt.Transactions) == 0 {
			slog.Warn("No transactions found in file", "file", filepath.Base(path))
		}

		parsed = append(parsed, stmt.Transactions...)
		results = append(results, importedFile{
			name:     filepath.Base(path),
			found:    len(stmt.Transactions),
			accounts: stmt.Accounts,
		})
	}

	fresh := ofx.FilterNew(l.Transactions(), parsed)
	printImportSummary(out, results, len(fresh), len(parsed)-len(fresh))

	if len(fresh) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("Nothing new to import."))
		return nil
	}

	if dryRun {
		for _, txn := range fresh {
			fmt.Fprintf(out, "  %s  %-40s %12s  %s\n",
				txn.Date.Format("2006-01-02"), txn.Description, cli.FormatMoney(txn.Amount), txn.Category)
		}
		fmt.Fprintln(out, cli.FormatInfo("Dry run complete - no data saved."))
		return nil
	}

	if cfg.Backend == config.BackendJSON {
		manager, err := checkpointManager(cfg)
		if err != nil {
			return err
		}
		info, err := manager.AutoCheckpoint(ctx, "import")
		if err != nil {
			return fmt.Errorf("failed to checkpoint before import: %w", err)
		}
		if info != nil {
			slog.Info("Created checkpoint before import", "checkpoint", info.ID)
		}
	}

	bar := newImportProgressBar(out, len(fresh))
	for _, txn := range fresh {
		l.AppendTransactions(txn)
		if err := bar.Add(1); err != nil {
			slog.Debug("Failed to update progress bar", "error", err)
		}
	}

	if err := store.Save(ctx, l.Data()); err != nil {
		return fmt.Errorf("failed to save imported transactions: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions.", len(fresh))))
	return nil
}

// expandImportPatterns resolves globs; a pattern without matches is kept when it
// names an existing file.
func expandImportPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, errNoImportFiles
	}
	return files, nil
}

func parseOFXFile(ctx context.Context, parser *ofx.Parser, path string) (*ofx.Statement, error) {
	f, err := os.Open(path) // #nosec G304 -- path supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close file", "file", path, "error", closeErr)
		}
	}()

	return parser.ParseFile(ctx, f)
}

func printImportSummary(w io.Writer, files []importedFile, fresh, duplicates int) {
	fmt.Fprintln(w, cli.FormatTitle("File import summary"))
	for _, f := range files {
		fmt.Fprintf(w, "  - %s: %d transactions", f.name, f.found)
		if len(f.accounts) > 0 {
			fmt.Fprintf(w, " (accounts: %v)", f.accounts)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  %d new, %d already recorded\n", fresh, duplicates)
}

func newImportProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetVisibility(isTerminal(w)),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Recording transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
