package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/picaf/internal/models"
)

// Format names an output format
type Format string

// Output formats
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// ParseFormat validates s against the formats a command supports
func ParseFormat(s string, allowed ...Format) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	names := make([]string, len(allowed))
	for i, a := range allowed {
		if f == a {
			return f, nil
		}
		names[i] = string(a)
	}
	return "", fmt.Errorf("invalid format %q, must be one of: %s", s, strings.Join(names, ", "))
}

// MatchRecord is a match located in its input
type MatchRecord struct {
	Source       string `json:"source,omitempty" yaml:"source,omitempty"` // Input file ("" for stdin)
	Line         int    `json:"line" yaml:"line"`                         // 1-based line number
	models.Match `yaml:",inline"`
}

// Records flattens per-line matches into records
func Records(source string, matches [][]models.Match) []MatchRecord {
	var out []MatchRecord
	for i, line := range matches {
		for _, m := range line {
			out = append(out, MatchRecord{Source: source, Line: i + 1, Match: m})
		}
	}
	return out
}

// WriteMatches writes records in the given format.
// Text is one "[source:]line:offset<TAB>kind<TAB>path" line per record, JSON
// is one object per line and YAML is a single sequence.
func WriteMatches(w io.Writer, format Format, records []MatchRecord) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		for _, r := range records {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("encode match: %w", err)
			}
		}
		return nil

	case FormatYAML:
		if len(records) == 0 {
			_, err := io.WriteString(w, "[]\n")
			return err
		}
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("encode matches: %w", err)
		}
		_, err = w.Write(data)
		return err

	case FormatText, "":
		for _, r := range records {
			prefix := ""
			if r.Source != "" {
				prefix = r.Source + ":"
			}
			if _, err := fmt.Fprintf(w, "%s%d:%d\t%s\t%s\n", prefix, r.Line, r.Offset, r.Kind, r.Path); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
