package cmd

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/harrison/picaf/internal/display"
	"github.com/harrison/picaf/internal/fileutil"
	"github.com/harrison/picaf/internal/models"
)

// NewFindCommand creates the 'picaf find' command
func NewFindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [textfile...]",
		Short: "List the existing files and directories mentioned in text",
		Long: `Resolve the path candidates of each input and print those that exist.

Each match is reported with its line, its byte offset, its kind (file or
directory) and the path as spelled in the text. Several input files are
resolved concurrently; output keeps argument order. Without arguments the
text is read from stdin.

Examples:
  picaf find notes.txt
  git status | picaf find --files-only
  picaf find --format json a.log b.log`,
		RunE: runFind,
	}

	cmd.Flags().String("format", "text", "Output format: text, json, yaml")
	cmd.Flags().Bool("files-only", false, "Report files only, not directories")

	return cmd
}

func runFind(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := display.ParseFormat(formatFlag, display.FormatText, display.FormatJSON, display.FormatYAML)
	if err != nil {
		return err
	}
	filesOnly, _ := cmd.Flags().GetBool("files-only")

	sources := args
	if len(sources) == 0 {
		sources = []string{""}
	}

	// Stdin can be read only once, so every "-" source shares one read
	var stdinLines []string
	if slices.ContainsFunc(sources, fileutil.IsStdin) {
		stdinLines, err = fileutil.ReadLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	start := time.Now()
	results := make([][]display.MatchRecord, len(sources))
	summaries := make([]models.Summary, len(sources))

	g, ctx := errgroup.WithContext(cmd.Context())
	for i, source := range sources {
		g.Go(func() error {
			lines := stdinLines
			if !fileutil.IsStdin(source) {
				var err error
				if lines, err = fileutil.ReadLinesFromFile(source, nil); err != nil {
					return fmt.Errorf("%s: %w", source, err)
				}
			}
			records, summary, err := s.findInSource(ctx, source, lines, filesOnly)
			if err != nil {
				return err
			}
			results[i] = records
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var records []display.MatchRecord
	var total models.Summary
	for i := range sources {
		records = append(records, results[i]...)
		total.Lines += summaries[i].Lines
		total.Matches += summaries[i].Matches
		total.Files += summaries[i].Files
		total.Directories += summaries[i].Directories
		total.Listings += summaries[i].Listings
		total.CacheHits += summaries[i].CacheHits
	}
	total.Duration = time.Since(start)

	if err := display.WriteMatches(cmd.OutOrStdout(), format, records); err != nil {
		return err
	}
	s.log.LogSummary(total)
	return nil
}

// findInSource resolves the lines of one input with its own resolver
func (s *session) findInSource(ctx context.Context, source string, lines []string, filesOnly bool) ([]display.MatchRecord, models.Summary, error) {
	start := time.Now()
	r := s.newResolver()
	matches := make([][]models.Match, len(lines))
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, models.Summary{}, err
		}
		for m := range r.Matches(line) {
			if filesOnly && !m.IsFile() {
				continue
			}
			matches[i] = append(matches[i], m)
		}
	}

	summary := summarize(lines, matches, r.Stats(), time.Since(start))
	return display.Records(source, matches), summary, nil
}
