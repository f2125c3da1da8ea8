package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow when useColor is set
func (w Warning) Display(out io.Writer, useColor bool) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected file:\n")
		} else {
			b.WriteString("    Affected files:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion: ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	yellow := color.New(color.FgYellow)
	if useColor {
		yellow.EnableColor()
	} else {
		yellow.DisableColor()
	}
	fmt.Fprint(out, yellow.Sprint(b.String()))
}

// WarnNoClickable reports that a map has no launchable file. Files lists the
// existing files the pattern filtered out.
func WarnNoClickable(pattern string, filtered []string) Warning {
	w := Warning{Title: "No clickable files found"}
	if pattern != "" && len(filtered) > 0 {
		w.Message = fmt.Sprintf("Pattern %q did not match any existing file", pattern)
		w.Files = filtered
		w.Suggestion = "The pattern must match at the start of the file name"
	}
	return w
}

// WarnSelection reports --select numbers outside the map
func WarnSelection(selected []int, available int) Warning {
	nums := make([]string, len(selected))
	for i, n := range selected {
		nums[i] = fmt.Sprintf("%d", n)
	}
	return Warning{
		Title:      "Selection out of range",
		Message:    fmt.Sprintf("Ignored %s: the map has %d clickable file(s)", strings.Join(nums, ", "), available),
		Suggestion: "Run 'picaf map' to see file numbers",
	}
}
