package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/picaf/internal/display"
	"github.com/harrison/picaf/internal/filelock"
	"github.com/harrison/picaf/internal/models"
	"github.com/harrison/picaf/internal/resolver"
	"github.com/harrison/picaf/internal/watch"
)

const clearScreen = "\x1b[H\x1b[2J"

// NewMapCommand creates the 'picaf map' command
func NewMapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map [textfile]",
		Short: "Render the text with its existing files marked",
		Long: `Render the text as a map: existing files are highlighted and numbered
[n] (the numbers used by 'picaf run --select'), existing directories are
shown in bold and everything else is left as it is.

Only files whose name matches --pattern (at the start of the name) are
marked clickable.

With --format html a standalone page is produced in which each file links
to its path. With --watch the map is rebuilt whenever the text file changes.

Examples:
  picaf map notes.txt
  picaf map -p '.*\.go$' build.log
  picaf map --format html -o map.html notes.txt
  picaf map --watch notes.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMap,
	}

	cmd.Flags().String("format", "text", "Output format: text, html")
	cmd.Flags().StringP("output", "o", "", "Write the map to a file instead of stdout")
	cmd.Flags().String("color", "", "Color output: auto, always, never")
	cmd.Flags().Bool("watch", false, "Rebuild the map when the text file changes")
	cmd.Flags().StringP("pattern", "p", "", "Regular expression selecting clickable files")

	return cmd
}

// mapper renders one text file, reusing its resolver between renders
type mapper struct {
	s        *session
	cmd      *cobra.Command
	args     []string
	format   display.Format
	output   string
	resolver *resolver.Resolver
	renders  int
}

func runMap(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := display.ParseFormat(formatFlag, display.FormatText, display.FormatHTML)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	watchFlag, _ := cmd.Flags().GetBool("watch")

	m := &mapper{s: s, cmd: cmd, args: args, format: format, output: output, resolver: s.newResolver()}

	if !watchFlag {
		return m.render(cmd.Context())
	}

	if len(args) == 0 || args[0] == "-" {
		return errors.New("--watch needs a text file argument")
	}
	w := watch.NewFileWatcher(args[0], s.cfg.WatchInterval, s.log)
	err = w.Run(cmd.Context(), m.render)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// render resolves the input and writes the map once
func (m *mapper) render(_ context.Context) error {
	if m.renders > 0 {
		m.resolver.Reset()
	}
	m.renders++

	lines, err := readInput(m.cmd, m.args)
	if err != nil {
		return err
	}

	start := time.Now()
	matches := m.resolver.ResolveLines(lines)
	rows := display.BuildRows(lines, matches, m.s.filter)
	m.s.log.LogSummary(summarize(lines, matches, m.resolver.Stats(), time.Since(start)))

	if len(display.ClickableFiles(rows)) == 0 {
		display.WarnNoClickable(m.s.cfg.Pattern, filteredFiles(matches)).
			Display(m.cmd.ErrOrStderr(), m.colorFor(m.cmd.ErrOrStderr()))
	}

	if m.output != "" {
		var buf bytes.Buffer
		if err := m.write(&buf, rows, false); err != nil {
			return err
		}
		if err := filelock.AtomicWrite(m.output, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write map to %s: %w", m.output, err)
		}
		m.s.log.LogInfo(fmt.Sprintf("Map written to %s", m.output))
		return nil
	}

	out := m.cmd.OutOrStdout()
	useColor := m.colorFor(out)
	if m.renders > 1 && useColor && m.format == display.FormatText {
		if _, err := io.WriteString(out, clearScreen); err != nil {
			return err
		}
	}
	return m.write(out, rows, useColor)
}

func (m *mapper) write(w io.Writer, rows []models.Row, useColor bool) error {
	if m.format == display.FormatHTML {
		return display.RenderHTML(w, m.title(), rows)
	}
	return display.NewTextRenderer(w, useColor).Render(rows)
}

func (m *mapper) title() string {
	if len(m.args) > 0 && m.args[0] != "-" {
		return "picaf: " + filepath.Base(m.args[0])
	}
	return "picaf"
}

// colorFor resolves the configured color mode for w
func (m *mapper) colorFor(w io.Writer) bool {
	f, _ := w.(*os.File)
	return display.ColorEnabled(m.s.cfg.Color, f)
}

// filteredFiles lists the files that exist but were not made clickable
func filteredFiles(matches [][]models.Match) []string {
	var files []string
	seen := make(map[string]bool)
	for _, line := range matches {
		for _, m := range line {
			if m.IsFile() && !seen[m.Path] {
				seen[m.Path] = true
				files = append(files, m.Path)
			}
		}
	}
	return files
}
