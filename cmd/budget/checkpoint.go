package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/storage"
	"github.com/spf13/cobra"
)

func checkpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Manage data file checkpoints",
		Long: `Create, list, restore, and delete checkpoints of the budget data file.

Checkpoints keep a copy of your ledger before risky changes such as a large
import, so you can go back if something looks wrong.`,
		Example: `  # Create a checkpoint before cleaning up categories
  budget checkpoint create --tag "pre-cleanup"

  # List all checkpoints
  budget checkpoint list

  # Restore from a checkpoint
  budget checkpoint restore pre-cleanup

  # Delete an old checkpoint
  budget checkpoint delete old-checkpoint`,
	}

	cmd.AddCommand(createCheckpointCmd())
	cmd.AddCommand(listCheckpointsCmd())
	cmd.AddCommand(restoreCheckpointCmd())
	cmd.AddCommand(deleteCheckpointCmd())

	return cmd
}

func createCheckpointCmd() *cobra.Command {
	var tag string
	var description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := newCheckpointManager()
			if err != nil {
				return err
			}

			info, err := manager.Create(cmd.Context(), tag, description)
			if err != nil {
				return fmt.Errorf("failed to create checkpoint: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Created checkpoint %s (%s)\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(info.ID),
				formatFileSize(info.FileSize))
			if info.Description != "" {
				fmt.Fprintf(out, "  Description: %s\n", info.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Checkpoint tag/name (auto-generated if not provided)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description of the checkpoint")

	return cmd
}

func listCheckpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all checkpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := newCheckpointManager()
			if err != nil {
				return err
			}

			checkpoints, err := manager.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list checkpoints: %w", err)
			}

			return renderCheckpoints(cmd.OutOrStdout(), checkpoints, time.Now())
		},
	}
}

func renderCheckpoints(out io.Writer, checkpoints []storage.CheckpointInfo, now time.Time) error {
	if len(checkpoints) == 0 {
		_, err := fmt.Fprintln(out, cli.SubtitleStyle.Render("No checkpoints found."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{
		cli.TableHeaderStyle.Render("NAME"),
		cli.TableHeaderStyle.Render("CREATED"),
		cli.TableHeaderStyle.Render("SIZE"),
		cli.TableHeaderStyle.Render("TRANSACTIONS"),
		cli.TableHeaderStyle.Render("CATEGORIES"),
		cli.TableHeaderStyle.Render("TYPE"),
	}, "\t"))

	for _, cp := range checkpoints {
		typeLabel := "manual"
		if cp.IsAuto {
			typeLabel = "auto"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			cli.InfoStyle.Render(cp.ID),
			formatRelativeTime(cp.CreatedAt, now),
			formatFileSize(cp.FileSize),
			cp.Transactions,
			cp.Categories,
			cli.SubtitleStyle.Render(typeLabel),
		)
	}

	return w.Flush()
}

func restoreCheckpointCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <checkpoint-id>",
		Short: "Restore the data file from a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkpointID := args[0]
			manager, err := newCheckpointManager()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !force {
				fmt.Fprintf(out, "%s This will replace your current budget data with checkpoint %s.\n",
					cli.WarningStyle.Render(cli.WarningIcon),
					cli.InfoStyle.Render(checkpointID))
				if !confirm(cmd.InOrStdin(), out) {
					fmt.Fprintln(out, cli.SubtitleStyle.Render("Restore cancelled."))
					return nil
				}
			}

			if err := manager.Restore(cmd.Context(), checkpointID); err != nil {
				return fmt.Errorf("failed to restore checkpoint: %w", err)
			}

			fmt.Fprintf(out, "%s Restored from checkpoint %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(checkpointID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func deleteCheckpointCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <checkpoint-id>",
		Short: "Delete a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkpointID := args[0]
			manager, err := newCheckpointManager()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !force {
				fmt.Fprintf(out, "%s This will permanently delete checkpoint %s.\n",
					cli.WarningStyle.Render(cli.WarningIcon),
					cli.InfoStyle.Render(checkpointID))
				if !confirm(cmd.InOrStdin(), out) {
					fmt.Fprintln(out, cli.SubtitleStyle.Render("Deletion cancelled."))
					return nil
				}
			}

			if err := manager.Delete(cmd.Context(), checkpointID); err != nil {
				return fmt.Errorf("failed to delete checkpoint: %w", err)
			}

			fmt.Fprintf(out, "%s Deleted checkpoint %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(checkpointID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func newCheckpointManager() (*storage.CheckpointManager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return checkpointManager(cfg)
}

func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "\nContinue? (y/N) ")
	response, _ := bufio.NewReader(in).ReadString('\n')
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(response)), "y")
}

// Helper functions

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

func formatRelativeTime(t, now time.Time) string {
	duration := now.Sub(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "yesterday"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("2006-01-02 15:04")
	}
}
