package display

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/harrison/picaf/internal/models"
)

func sampleRecords() []MatchRecord {
	return Records("notes.txt", [][]models.Match{
		{file(2, "a.txt")},
		nil,
		{dir(0, "src")},
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON", FormatText, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("html", FormatText, FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of: text, json")
}

func TestRecords(t *testing.T) {
	records := sampleRecords()
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Line)
	assert.Equal(t, 3, records[1].Line)
	assert.Equal(t, "src", records[1].Path)
}

func TestWriteMatches_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMatches(&buf, FormatText, sampleRecords()))
	assert.Equal(t, "notes.txt:1:2\tfile\ta.txt\nnotes.txt:3:0\tdirectory\tsrc\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteMatches(&buf, FormatText, Records("", [][]models.Match{{file(0, "x")}})))
	assert.Equal(t, "1:0\tfile\tx\n", buf.String())
}

func TestWriteMatches_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMatches(&buf, FormatJSON, sampleRecords()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, "notes.txt", got["source"])
	assert.Equal(t, float64(1), got["line"])
	assert.Equal(t, float64(2), got["offset"])
	assert.Equal(t, "file", got["kind"])
	assert.Equal(t, "a.txt", got["path"])
}

func TestWriteMatches_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMatches(&buf, FormatYAML, sampleRecords()))

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "directory", got[1]["kind"])
	assert.Equal(t, 3, got[1]["line"])

	buf.Reset()
	require.NoError(t, WriteMatches(&buf, FormatYAML, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteMatches_Unsupported(t *testing.T) {
	err := WriteMatches(&bytes.Buffer{}, FormatHTML, nil)
	require.Error(t, err)
}
