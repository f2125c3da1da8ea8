package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/harrison/picaf/internal/filelock"
)

// HistoryConfig represents launch history configuration
type HistoryConfig struct {
	// Enabled records every launch in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database path ("" = $PICAF_HOME/history.db)
	DBPath string `yaml:"db_path"`
}

// Config represents picaf configuration options
type Config struct {
	// Command is the command line run for a chosen file; {N} placeholders
	// are replaced by pattern captures, {0} by the file name
	Command string `yaml:"command"`

	// Pattern filters which files are launchable and supplies captures
	Pattern string `yaml:"pattern"`

	// DryRun prints commands instead of running them
	DryRun bool `yaml:"dry_run"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level" validate:"oneof=trace debug info warn error"`

	// Color controls colored map output (auto, always, never)
	Color string `yaml:"color" validate:"oneof=auto always never"`

	// Escalation selects the resolver policy (parents, immediate)
	Escalation string `yaml:"escalation" validate:"oneof=parents immediate"`

	// TildeDelimiter treats "~" as a delimiter when scanning
	TildeDelimiter bool `yaml:"tilde_delimiter"`

	// MaxComponentLength truncates path-like runs to this many characters
	MaxComponentLength int `yaml:"max_component_length" validate:"min=1,max=4096"`

	// WatchInterval is how often watch mode polls the input file
	WatchInterval time.Duration `yaml:"watch_interval" validate:"min=0"`

	// History contains launch history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:           "info",
		Color:              "auto",
		Escalation:         "parents",
		MaxComponentLength: 256,
		WatchInterval:      500 * time.Millisecond,
	}
}

// yamlConfig mirrors Config with pointers so that explicitly set zero values
// override defaults and durations stay human-readable
type yamlConfig struct {
	Command            *string `yaml:"command,omitempty"`
	Pattern            *string `yaml:"pattern,omitempty"`
	DryRun             *bool   `yaml:"dry_run,omitempty"`
	LogLevel           *string `yaml:"log_level,omitempty"`
	Color              *string `yaml:"color,omitempty"`
	Escalation         *string `yaml:"escalation,omitempty"`
	TildeDelimiter     *bool   `yaml:"tilde_delimiter,omitempty"`
	MaxComponentLength *int    `yaml:"max_component_length,omitempty"`
	WatchInterval      *string `yaml:"watch_interval,omitempty"`
	History            *struct {
		Enabled *bool   `yaml:"enabled,omitempty"`
		DBPath  *string `yaml:"db_path,omitempty"`
	} `yaml:"history,omitempty"`
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if raw.Command != nil {
		cfg.Command = *raw.Command
	}
	if raw.Pattern != nil {
		cfg.Pattern = *raw.Pattern
	}
	if raw.DryRun != nil {
		cfg.DryRun = *raw.DryRun
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(*raw.LogLevel)
	}
	if raw.Color != nil {
		cfg.Color = strings.ToLower(*raw.Color)
	}
	if raw.Escalation != nil {
		cfg.Escalation = strings.ToLower(*raw.Escalation)
	}
	if raw.TildeDelimiter != nil {
		cfg.TildeDelimiter = *raw.TildeDelimiter
	}
	if raw.MaxComponentLength != nil {
		cfg.MaxComponentLength = *raw.MaxComponentLength
	}
	if raw.WatchInterval != nil {
		interval, err := time.ParseDuration(*raw.WatchInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid watch_interval format %q: %w", *raw.WatchInterval, err)
		}
		cfg.WatchInterval = interval
	}
	if raw.History != nil {
		if raw.History.Enabled != nil {
			cfg.History.Enabled = *raw.History.Enabled
		}
		if raw.History.DBPath != nil {
			cfg.History.DBPath = *raw.History.DBPath
		}
	}

	return cfg, nil
}

// LoadConfigFromHome loads $PICAF_HOME/config.yaml
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromHome() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfig(path)
}

// Overrides carries CLI flag values; nil fields leave the configuration unchanged
type Overrides struct {
	Command    *string
	Pattern    *string
	DryRun     *bool
	LogLevel   *string
	Color      *string
	Escalation *string
}

// MergeWithFlags merges CLI flags into the configuration
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(o Overrides) {
	if o.Command != nil {
		c.Command = *o.Command
	}
	if o.Pattern != nil {
		c.Pattern = *o.Pattern
	}
	if o.DryRun != nil {
		c.DryRun = *o.DryRun
	}
	if o.LogLevel != nil {
		c.LogLevel = strings.ToLower(*o.LogLevel)
	}
	if o.Color != nil {
		c.Color = strings.ToLower(*o.Color)
	}
	if o.Escalation != nil {
		c.Escalation = strings.ToLower(*o.Escalation)
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate validates the configuration values
// Returns an error describing the first invalid field
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describeFieldError(verrs[0])
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Pattern != "" {
		if _, err := regexp.Compile(c.Pattern); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", c.Pattern, err)
		}
	}

	return nil
}

// describeFieldError turns a validator error into a message naming the YAML key
func describeFieldError(fe validator.FieldError) error {
	switch fe.Field() {
	case "LogLevel":
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", fe.Value())
	case "Color":
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", fe.Value())
	case "Escalation":
		return fmt.Errorf("invalid escalation %q, must be one of: parents, immediate", fe.Value())
	case "MaxComponentLength":
		return fmt.Errorf("max_component_length must be between 1 and 4096, got %v", fe.Value())
	case "WatchInterval":
		return fmt.Errorf("watch_interval must be >= 0, got %v", fe.Value())
	default:
		return fmt.Errorf("invalid %s: failed %q check", fe.Namespace(), fe.Tag())
	}
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	out := map[string]interface{}{
		"command":              c.Command,
		"pattern":              c.Pattern,
		"dry_run":              c.DryRun,
		"log_level":            c.LogLevel,
		"color":                c.Color,
		"escalation":           c.Escalation,
		"tilde_delimiter":      c.TildeDelimiter,
		"max_component_length": c.MaxComponentLength,
		"watch_interval":       c.WatchInterval.String(),
		"history": map[string]interface{}{
			"enabled": c.History.Enabled,
			"db_path": c.History.DBPath,
		},
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// WriteConfig writes cfg to path under a file lock.
// An existing file is only replaced when force is true.
func WriteConfig(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	return filelock.LockAndWrite(path, data)
}
