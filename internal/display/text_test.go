package display

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/picaf/internal/models"
)

func sampleRows() []models.Row {
	return BuildRows(
		[]string{"see a.txt and docs", "then b.txt"},
		[][]models.Match{{file(4, "a.txt"), dir(14, "docs")}, {file(5, "b.txt")}},
		nil,
	)
}

func TestTextRenderer_Plain(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf, false)

	require.NoError(t, r.Render(sampleRows()))

	assert.Equal(t, "see [1]a.txt and docs\nthen [2]b.txt\n", buf.String())
}

func TestTextRenderer_Color(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf, true)

	require.NoError(t, r.Render(sampleRows()))

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "docs")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestColorEnabled(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, ColorEnabled(ColorAlways, f))
	assert.True(t, ColorEnabled("ALWAYS", f))
	assert.False(t, ColorEnabled(ColorNever, f))
	assert.False(t, ColorEnabled(ColorAuto, f), "regular files are not terminals")
	assert.False(t, ColorEnabled(ColorAuto, nil))
}
