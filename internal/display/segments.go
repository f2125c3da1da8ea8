package display

import (
	"regexp"

	"github.com/harrison/picaf/internal/models"
)

// Launchable reports whether name passes filter. The pattern must match at
// the start of the name; a nil filter accepts everything.
func Launchable(filter *regexp.Regexp, name string) bool {
	if filter == nil {
		return true
	}
	loc := filter.FindStringIndex(name)
	return loc != nil && loc[0] == 0
}

// BuildRow segments line using its matches.
//
// Files accepted by filter become file segments and directories become
// directory segments. Filtered-out files are folded into the surrounding
// plain text. A match that starts inside text already consumed by an earlier
// match is skipped, so segments never overlap and their texts concatenate
// back to the line.
func BuildRow(lineNo int, line string, matches []models.Match, filter *regexp.Regexp) models.Row {
	row := models.Row{Line: lineNo}
	last := 0
	plainStart := 0

	flushPlain := func(end int) {
		if plainStart < end {
			row.Segments = append(row.Segments, models.Segment{
				Offset: plainStart,
				Text:   line[plainStart:end],
				Kind:   models.SegmentPlain,
			})
		}
	}

	for _, m := range matches {
		end := m.End()
		if m.Offset < last || end > len(line) {
			continue
		}

		var kind models.SegmentKind
		switch {
		case m.IsFile() && Launchable(filter, m.Path):
			kind = models.SegmentFile
		case m.Kind == models.KindDirectory:
			kind = models.SegmentDirectory
		default:
			last = end
			continue
		}

		flushPlain(m.Offset)
		row.Segments = append(row.Segments, models.Segment{
			Offset: m.Offset,
			Text:   line[m.Offset:end],
			Kind:   kind,
			Path:   m.Path,
		})
		last = end
		plainStart = end
	}
	flushPlain(len(line))

	return row
}

// BuildRows segments every line; matches[i] belongs to lines[i]
func BuildRows(lines []string, matches [][]models.Match, filter *regexp.Regexp) []models.Row {
	rows := make([]models.Row, len(lines))
	for i, line := range lines {
		var m []models.Match
		if i < len(matches) {
			m = matches[i]
		}
		rows[i] = BuildRow(i+1, line, m, filter)
	}
	return rows
}

// ClickableFiles returns the file segments of rows in display order. The
// position of a segment in the result is its number minus one.
func ClickableFiles(rows []models.Row) []models.Segment {
	var files []models.Segment
	for _, row := range rows {
		files = append(files, row.Files()...)
	}
	return files
}
