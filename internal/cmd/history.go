package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/harrison/picaf/internal/history"
	"github.com/harrison/picaf/internal/models"
)

// NewHistoryCommand creates the 'picaf history' command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently launched commands",
		Long: `Show the commands 'picaf run' launched, most recent first.

Launches are recorded when history.enabled is true in the configuration.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of launches to show (0 = all)")
	cmd.Flags().String("run", "", "Show only the launches of one run ID")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetString("run")
	out := cmd.OutOrStdout()

	dbPath, err := historyDBPath(cfg)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No launch history recorded yet.")
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer store.Close()

	var launches []*models.Launch
	if runID != "" {
		launches, err = store.ForRun(cmd.Context(), runID)
	} else {
		launches, err = store.Recent(cmd.Context(), limit)
	}
	if err != nil {
		return err
	}

	if len(launches) == 0 {
		fmt.Fprintln(out, "No launch history recorded yet.")
		return nil
	}
	printLaunches(out, launches)
	return nil
}

func printLaunches(w io.Writer, launches []*models.Launch) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	gray := color.New(color.FgHiBlack)

	for _, l := range launches {
		fmt.Fprintf(w, "%4d  %s  ", l.ID, formatTimestamp(l.LaunchedAt))
		switch {
		case l.DryRun:
			gray.Fprintf(w, "%-7s", "dry-run")
		case l.ExitCode == 0:
			green.Fprintf(w, "%-7s", "ok")
		default:
			red.Fprintf(w, "%-7s", fmt.Sprintf("exit %d", l.ExitCode))
		}
		fmt.Fprintf(w, "  %s\n", shellquote.Join(l.Command...))
	}
}

// formatTimestamp formats a timestamp for display in local time
func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
