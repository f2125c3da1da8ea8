package display

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	goldhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/harrison/picaf/internal/models"
)

const pageHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: monospace; white-space: nowrap; }
</style>
</head>
<body>
`

const pageFooter = `</body>
</html>
`

var markdown = goldmark.New(goldmark.WithRendererOptions(goldhtml.WithHardWraps(), goldhtml.WithUnsafe()))

// RenderHTML writes rows as a standalone HTML page in which every clickable
// file links to its path and directories are shown in bold
func RenderHTML(w io.Writer, title string, rows []models.Row) error {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(RowsMarkdown(rows)), &buf); err != nil {
		return fmt.Errorf("convert map to HTML: %w", err)
	}

	if _, err := fmt.Fprintf(w, pageHeader, html.EscapeString(title)); err != nil {
		return fmt.Errorf("write HTML: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write HTML: %w", err)
	}
	if _, err := io.WriteString(w, pageFooter); err != nil {
		return fmt.Errorf("write HTML: %w", err)
	}
	return nil
}

// RowsMarkdown renders rows as a single markdown paragraph with one line per
// row. Every character of the input is escaped so it renders literally.
func RowsMarkdown(rows []models.Row) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		if len(row.Segments) == 0 {
			b.WriteString("&nbsp;")
			continue
		}
		for _, seg := range row.Segments {
			text := escapeMarkdown(seg.Text)
			switch seg.Kind {
			case models.SegmentFile:
				fmt.Fprintf(&b, "[%s](%s)", text, linkTarget(seg.Path))
			case models.SegmentDirectory:
				fmt.Fprintf(&b, "<strong>%s</strong>", text)
			default:
				b.WriteString(text)
			}
		}
	}
	b.WriteString("\n")
	return b.String()
}

// escapeMarkdown backslash-escapes ASCII punctuation and keeps spaces from
// collapsing. Since "<" is escaped, the only raw HTML in the document is
// what RowsMarkdown adds itself.
func escapeMarkdown(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			b.WriteString("&nbsp;")
		case c == '\t':
			b.WriteString("&nbsp;&nbsp;&nbsp;&nbsp;")
		case isASCIIPunct(c):
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}

// linkTarget percent-encodes a path for use as a link destination
func linkTarget(path string) string {
	u := url.URL{Path: path}
	return u.EscapedPath()
}
