package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/picaf/internal/models"
)

// Color modes accepted by ColorEnabled
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorEnabled resolves a color mode for output going to f.
// In auto mode color is used only for terminals and only when NO_COLOR is unset.
func ColorEnabled(mode string, f *os.File) bool {
	switch strings.ToLower(mode) {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if f == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TextRenderer writes rows as terminal text.
// Clickable files are prefixed with their number in brackets, counting from 1
// across every row the renderer writes.
type TextRenderer struct {
	out    io.Writer
	next   int
	number *color.Color
	file   *color.Color
	dir    *color.Color
}

// NewTextRenderer creates a renderer; useColor forces color on or off
// regardless of the writer
func NewTextRenderer(out io.Writer, useColor bool) *TextRenderer {
	r := &TextRenderer{
		out:    out,
		next:   1,
		number: color.New(color.FgYellow),
		file:   color.New(color.FgCyan, color.Underline),
		dir:    color.New(color.FgBlue, color.Bold),
	}
	for _, c := range []*color.Color{r.number, r.file, r.dir} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// RenderRow writes one row followed by a newline
func (r *TextRenderer) RenderRow(row models.Row) error {
	var b strings.Builder
	for _, seg := range row.Segments {
		switch seg.Kind {
		case models.SegmentFile:
			b.WriteString(r.number.Sprintf("[%d]", r.next))
			b.WriteString(r.file.Sprint(seg.Text))
			r.next++
		case models.SegmentDirectory:
			b.WriteString(r.dir.Sprint(seg.Text))
		default:
			b.WriteString(seg.Text)
		}
	}
	b.WriteString("\n")

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return fmt.Errorf("write row %d: %w", row.Line, err)
	}
	return nil
}

// Render writes every row in order
func (r *TextRenderer) Render(rows []models.Row) error {
	for _, row := range rows {
		if err := r.RenderRow(row); err != nil {
			return err
		}
	}
	return nil
}
