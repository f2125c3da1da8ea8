package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/picaf/internal/models"
)

// colorScheme defines consistent colors for summary metrics.
// Green: files found
// Cyan: directories and labels
// Yellow: nothing found
type colorScheme struct {
	success *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single metric with colorized label and value.
// Format: "label: value"
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), scheme.value.Sprintf("%v", value))
}

// formatSummary renders summary metrics without color.
func formatSummary(s models.Summary) string {
	return fmt.Sprintf("lines: %d, files: %d, dirs: %d, listings: %d, hits: %d",
		s.Lines, s.Files, s.Directories, s.Listings, s.CacheHits)
}

// formatColorizedSummary renders summary metrics with color coding.
// Files are green when any were found and yellow when none were.
func formatColorizedSummary(s models.Summary) string {
	scheme := newColorScheme()
	parts := []string{formatColorizedMetric("lines", s.Lines, scheme)}

	if s.Files > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.success.Sprint("files"), scheme.value.Sprintf("%d", s.Files)))
	} else {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.warn.Sprint("files"), scheme.warn.Sprint("0")))
	}

	parts = append(parts,
		formatColorizedMetric("dirs", s.Directories, scheme),
		formatColorizedMetric("listings", s.Listings, scheme),
		formatColorizedMetric("hits", s.CacheHits, scheme),
	)

	return strings.Join(parts, ", ")
}
