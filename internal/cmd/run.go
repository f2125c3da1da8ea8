package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/picaf/internal/action"
	"github.com/harrison/picaf/internal/config"
	"github.com/harrison/picaf/internal/display"
	"github.com/harrison/picaf/internal/history"
	"github.com/harrison/picaf/internal/models"
)

// NewRunCommand creates the 'picaf run' command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [textfile]",
		Short: "Run a command for files mentioned in text",
		Long: `Build the map of the text and launch the command for the chosen files.

Files are chosen by the numbers 'picaf map' shows (--select, repeatable) or
all at once (--all). Without a selection the numbered map is printed.

The command is split like a shell command line. "{0}" stands for the file
name; "{N}" is capture N of --pattern matched at the start of the name.
Without any placeholder the file name is appended. Without a command the
file name is printed.

If a launched command exits with a non-zero status, picaf stops and exits
with that status.

Examples:
  picaf run -c 'vim {0}' --select 2 notes.txt
  picaf run -p '(.*)_test\.go' -c 'go test -run . ./{1}_test.go' --all build.log
  picaf run -n -c less --all notes.txt   # print the commands only`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRun,
	}

	cmd.Flags().StringP("command", "c", "", "Command line for a chosen file ({0} = file name)")
	cmd.Flags().StringP("pattern", "p", "", "Regular expression filtering files and providing captures")
	cmd.Flags().BoolP("dry-run", "n", false, "Print commands without running them")
	cmd.Flags().IntSlice("select", nil, "Number of a file in the map to launch (repeatable)")
	cmd.Flags().Bool("all", false, "Launch every clickable file")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	selected, _ := cmd.Flags().GetIntSlice("select")
	all, _ := cmd.Flags().GetBool("all")
	if all && len(selected) > 0 {
		return errors.New("cannot use both --select and --all")
	}

	var tmpl *action.Template
	if s.cfg.Command != "" {
		tmpl, err = action.ParseCommand(s.cfg.Command, s.filter)
		if err != nil {
			return err
		}
	}

	lines, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	r := s.newResolver()
	rows := display.BuildRows(lines, r.ResolveLines(lines), s.filter)
	files := display.ClickableFiles(rows)

	stderr := cmd.ErrOrStderr()
	errFile, _ := stderr.(*os.File)
	useColor := display.ColorEnabled(s.cfg.Color, errFile)

	if len(files) == 0 {
		display.WarnNoClickable(s.cfg.Pattern, nil).Display(stderr, useColor)
		return nil
	}

	if !all && len(selected) == 0 {
		if err := display.NewTextRenderer(cmd.OutOrStdout(), false).Render(rows); err != nil {
			return err
		}
		fmt.Fprintln(stderr, "Choose files with --select N or --all")
		return nil
	}

	paths, invalid := choosePaths(files, selected, all)
	if len(invalid) > 0 {
		display.WarnSelection(invalid, len(files)).Display(stderr, useColor)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no file selected: the map has %d clickable file(s)", len(files))
	}

	launcher := action.NewLauncher(tmpl, s.cfg.DryRun)
	launcher.Stdin = cmd.InOrStdin()
	launcher.Stdout = cmd.OutOrStdout()
	launcher.Stderr = stderr
	launcher.Logger = s.log

	if s.cfg.History.Enabled && tmpl != nil {
		store, err := openHistory(s.cfg)
		if err != nil {
			s.log.LogWarn(fmt.Sprintf("launch history disabled: %v", err))
		} else {
			defer store.Close()
			s.log.LogDebug(fmt.Sprintf("Recording launches in %s (run %s)", store.Path(), launcher.RunID))
			launcher.Recorder = store
		}
	}

	return launcher.LaunchAll(cmd.Context(), paths)
}

// choosePaths maps selection numbers to file paths. Paths are deduplicated
// in order; numbers outside 1..len(files) are returned as invalid.
func choosePaths(files []models.Segment, selected []int, all bool) (paths []string, invalid []int) {
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	if all {
		for _, f := range files {
			add(f.Path)
		}
		return paths, nil
	}

	for _, n := range selected {
		if n < 1 || n > len(files) {
			invalid = append(invalid, n)
			continue
		}
		add(files[n-1].Path)
	}
	return paths, invalid
}

// historyDBPath returns the configured history database path or the default
func historyDBPath(cfg *config.Config) (string, error) {
	if cfg.History.DBPath != "" {
		return cfg.History.DBPath, nil
	}
	return config.DefaultHistoryDBPath()
}

// openHistory opens the configured launch history database
func openHistory(cfg *config.Config) (*history.Store, error) {
	dbPath, err := historyDBPath(cfg)
	if err != nil {
		return nil, err
	}
	return history.NewStore(dbPath)
}
