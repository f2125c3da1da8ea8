package cmd

import (
	"fmt"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/picaf/internal/config"
	"github.com/harrison/picaf/internal/fileutil"
	"github.com/harrison/picaf/internal/logger"
	"github.com/harrison/picaf/internal/models"
	"github.com/harrison/picaf/internal/pathscan"
	"github.com/harrison/picaf/internal/resolver"
)

// session holds what every subcommand needs once configuration and flags
// have been merged
type session struct {
	cfg     *config.Config
	log     *logger.ConsoleLogger
	scanner *pathscan.Scanner
	policy  resolver.Policy
	filter  *regexp.Regexp
	fsys    fileutil.FS
}

// changedString returns a pointer to the flag value if the user set it
func changedString(cmd *cobra.Command, name string) *string {
	if f := cmd.Flags().Lookup(name); f == nil || !f.Changed {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

// changedBool returns a pointer to the flag value if the user set it
func changedBool(cmd *cobra.Command, name string) *bool {
	if f := cmd.Flags().Lookup(name); f == nil || !f.Changed {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}

// loadConfig reads the configuration file named by --config (or the default
// one) and merges the flags the user set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromHome()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.MergeWithFlags(config.Overrides{
		Command:    changedString(cmd, "command"),
		Pattern:    changedString(cmd, "pattern"),
		DryRun:     changedBool(cmd, "dry-run"),
		LogLevel:   changedString(cmd, "log-level"),
		Color:      changedString(cmd, "color"),
		Escalation: changedString(cmd, "escalation"),
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newSession loads configuration and builds the scanner, filter and logger
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	policy, err := resolver.ParsePolicy(cfg.Escalation)
	if err != nil {
		return nil, err
	}

	var filter *regexp.Regexp
	if cfg.Pattern != "" {
		filter, err = regexp.Compile(cfg.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", cfg.Pattern, err)
		}
	}

	return &session{
		cfg: cfg,
		log: logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel),
		scanner: pathscan.New(pathscan.Options{
			MaxComponentLength: cfg.MaxComponentLength,
			TildeDelimiter:     cfg.TildeDelimiter,
		}),
		policy: policy,
		filter: filter,
		fsys:   fileutil.NewNativeFS(),
	}, nil
}

// newResolver creates a resolver with its own listing cache
func (s *session) newResolver() *resolver.Resolver {
	r := resolver.New(s.fsys, resolver.Options{
		Scanner: s.scanner,
		Policy:  s.policy,
		Logger:  s.log,
	})
	s.log.LogDebug(fmt.Sprintf("Resolving with %s escalation, components up to %d characters",
		r.Policy(), s.scanner.MaxComponentLength()))
	return r
}

// readInput reads the lines of the single optional text file argument
func readInput(cmd *cobra.Command, args []string) ([]string, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	return fileutil.ReadLinesFromFile(path, cmd.InOrStdin())
}

// summarize builds the summary of one resolution pass
func summarize(lines []string, matches [][]models.Match, stats resolver.CacheStats, elapsed time.Duration) models.Summary {
	summary := models.Summary{
		Lines:     len(lines),
		Listings:  stats.Listings,
		CacheHits: stats.Hits,
		Duration:  elapsed,
	}
	for _, line := range matches {
		for _, m := range line {
			summary.Add(m)
		}
	}
	return summary
}
