package models

import "time"

// Launch records one command launched (or printed in dry-run mode) for a file
type Launch struct {
	ID         int64     // Database row ID, set after recording
	RunID      string    // Identifier shared by every launch of one picaf invocation
	Path       string    // File the command was launched for
	Command    []string  // Final argument vector
	ExitCode   int       // Exit status of the command (0 for dry runs)
	DryRun     bool      // True if the command was only printed
	LaunchedAt time.Time // When the launch happened
}
