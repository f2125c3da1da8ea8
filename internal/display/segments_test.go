package display

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/picaf/internal/models"
)

func file(offset int, path string) models.Match {
	return models.Match{Offset: offset, Kind: models.KindFile, Path: path}
}

func dir(offset int, path string) models.Match {
	return models.Match{Offset: offset, Kind: models.KindDirectory, Path: path}
}

func joinSegments(row models.Row) string {
	var b strings.Builder
	for _, seg := range row.Segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

func TestBuildRow_Layout(t *testing.T) {
	line := "1 a.txt 2 b.txt, d e.txt x t"
	matches := []models.Match{file(2, "a.txt"), file(10, "b.txt"), file(17, "d e.txt"), dir(25, "x t")}

	row := BuildRow(3, line, matches, nil)

	assert.Equal(t, 3, row.Line)
	assert.Equal(t, line, joinSegments(row))
	assert.Equal(t, []models.Segment{
		{Offset: 0, Text: "1 ", Kind: models.SegmentPlain},
		{Offset: 2, Text: "a.txt", Kind: models.SegmentFile, Path: "a.txt"},
		{Offset: 7, Text: " 2 ", Kind: models.SegmentPlain},
		{Offset: 10, Text: "b.txt", Kind: models.SegmentFile, Path: "b.txt"},
		{Offset: 15, Text: ", ", Kind: models.SegmentPlain},
		{Offset: 17, Text: "d e.txt", Kind: models.SegmentFile, Path: "d e.txt"},
		{Offset: 24, Text: " ", Kind: models.SegmentPlain},
		{Offset: 25, Text: "x t", Kind: models.SegmentDirectory, Path: "x t"},
	}, row.Segments)
}

func TestBuildRow_Filter(t *testing.T) {
	line := "main.go notes.txt"
	matches := []models.Match{file(0, "main.go"), file(8, "notes.txt")}

	row := BuildRow(1, line, matches, regexp.MustCompile(`.*\.go`))

	assert.Equal(t, line, joinSegments(row))
	files := row.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "main.go", files[0].Path)
	assert.Equal(t, models.Segment{Offset: 7, Text: " notes.txt", Kind: models.SegmentPlain}, row.Segments[1])
}

func TestBuildRow_FilterAnchoredAtStart(t *testing.T) {
	filter := regexp.MustCompile(`txt`)
	assert.False(t, Launchable(filter, "a.txt"), "pattern must match at the start")
	assert.True(t, Launchable(filter, "txt/a"))
	assert.True(t, Launchable(nil, "anything"))
}

func TestBuildRow_SkipsOverlaps(t *testing.T) {
	line := "d e.txt"
	matches := []models.Match{file(0, "d e.txt"), file(2, "e.txt")}

	row := BuildRow(1, line, matches, nil)

	require.Len(t, row.Segments, 1)
	assert.Equal(t, "d e.txt", row.Segments[0].Path)
}

func TestBuildRow_SameOffsetKeepsFirst(t *testing.T) {
	line := "a b"
	matches := []models.Match{file(0, "a"), file(0, "a b")}

	row := BuildRow(1, line, matches, nil)

	assert.Equal(t, line, joinSegments(row))
	files := row.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "a", files[0].Path)
}

func TestBuildRow_NoMatches(t *testing.T) {
	row := BuildRow(1, "plain text", nil, nil)
	assert.Equal(t, []models.Segment{{Offset: 0, Text: "plain text", Kind: models.SegmentPlain}}, row.Segments)

	empty := BuildRow(2, "", nil, nil)
	assert.Empty(t, empty.Segments)
}

func TestBuildRow_IgnoresOutOfRange(t *testing.T) {
	row := BuildRow(1, "ab", []models.Match{file(1, "bcd")}, nil)
	assert.Equal(t, "ab", joinSegments(row))
	assert.Empty(t, row.Files())
}

func TestBuildRowsAndClickableFiles(t *testing.T) {
	lines := []string{"a.txt b.txt", "", "c.txt"}
	matches := [][]models.Match{{file(0, "a.txt"), file(6, "b.txt")}, nil, {file(0, "c.txt")}}

	rows := BuildRows(lines, matches, nil)
	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows[1].Line)

	files := ClickableFiles(rows)
	require.Len(t, files, 3)
	assert.Equal(t, "a.txt", files[0].Path)
	assert.Equal(t, "b.txt", files[1].Path)
	assert.Equal(t, "c.txt", files[2].Path)
}
