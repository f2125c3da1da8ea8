package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewScanCommand creates the 'picaf scan' command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [textfile]",
		Short: "List path-like candidates without touching the filesystem",
		Long: `Print every substring of the text that could be a path, one per line
as "line:offset<TAB>text". Offsets are byte offsets into the line.

No existence check is made; use 'picaf find' for that.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	lines, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, line := range lines {
		for cand := range s.scanner.Candidates(line) {
			if _, err := fmt.Fprintf(out, "%d:%d\t%s\n", i+1, cand.Offset, cand.Text); err != nil {
				return err
			}
		}
	}
	return nil
}
