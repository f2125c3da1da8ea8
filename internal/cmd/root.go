package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for picaf
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "picaf",
		Short: "Make a clickable map of the files mentioned in a text",
		Long: `picaf scans text for substrings that look like file or directory
paths, checks which of them exist, and turns the text into a map where
existing files can be opened with a command of your choice.

Text is read from the file argument or from stdin.

Configuration is loaded from $PICAF_HOME/config.yaml (default ~/.picaf)
if present. CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: $PICAF_HOME/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().String("escalation", "", "Resolver escalation policy: parents, immediate")

	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewFindCommand())
	cmd.AddCommand(NewMapCommand())
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewConfigCommand())

	return cmd
}
