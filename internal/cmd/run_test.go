package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/picaf/internal/action"
	"github.com/harrison/picaf/internal/models"
)

const runInput = "a.txt b.txt\nc.go a.txt\n"

func runWorkspace(t *testing.T) {
	t.Helper()
	workspace(t, "a.txt", "b.txt", "c.go")
}

func TestRunCommand_NoSelectionPrintsMap(t *testing.T) {
	runWorkspace(t)

	res := execute(t, runInput, "run", "-c", "cat")
	require.NoError(t, res.err)

	assert.Equal(t, "[1]a.txt [2]b.txt\n[3]c.go [4]a.txt\n", res.stdout)
	assert.Contains(t, res.stderr, "--select N or --all")
}

func TestRunCommand_DryRunSelect(t *testing.T) {
	runWorkspace(t)

	res := execute(t, runInput, "run", "-n", "-c", "less -R", "--select", "2", "--select", "3")
	require.NoError(t, res.err)
	assert.Equal(t, "less -R b.txt\nless -R c.go\n", res.stdout)
}

func TestRunCommand_AllDeduplicates(t *testing.T) {
	runWorkspace(t)

	res := execute(t, runInput, "run", "-n", "-c", "vim {0}", "--all")
	require.NoError(t, res.err)
	assert.Equal(t, "vim a.txt\nvim b.txt\nvim c.go\n", res.stdout)
}

func TestRunCommand_PrintsNamesWithoutCommand(t *testing.T) {
	runWorkspace(t)

	res := execute(t, runInput, "run", "--all")
	require.NoError(t, res.err)
	assert.Equal(t, "a.txt\nb.txt\nc.go\n", res.stdout)
}

func TestRunCommand_PatternCaptures(t *testing.T) {
	runWorkspace(t)

	res := execute(t, runInput, "run", "-n", "-p", `(\w+)\.go`, "-c", "go vet ./{1}", "--all")
	require.NoError(t, res.err)
	assert.Equal(t, "go vet ./c\n", res.stdout)
}

func TestRunCommand_PlaceholderWithoutPattern(t *testing.T) {
	runWorkspace(t)

	res := execute(t, runInput, "run", "-c", "echo {1}", "--all")
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, action.ErrNoCapture))
}

func TestRunCommand_RunsCommand(t *testing.T) {
	runWorkspace(t)

	res := execute(t, runInput, "run", "-c", `sh -c 'printf "[%s]" "$0"'`, "--select", "1")
	require.NoError(t, res.err)
	assert.Equal(t, "[a.txt]", res.stdout)
}

func TestRunCommand_PropagatesExitCode(t *testing.T) {
	runWorkspace(t)

	res := execute(t, runInput, "run", "-c", `sh -c 'exit 4'`, "--all")
	require.Error(t, res.err)

	var exitErr *action.ExitError
	require.True(t, errors.As(res.err, &exitErr))
	assert.Equal(t, 4, exitErr.Code)
	assert.Equal(t, "a.txt", exitErr.Path)
}

func TestRunCommand_Selection(t *testing.T) {
	runWorkspace(t)

	res := execute(t, runInput, "run", "--select", "9", "--select", "1")
	require.NoError(t, res.err)
	assert.Equal(t, "a.txt\n", res.stdout)
	assert.Contains(t, res.stderr, "Selection out of range")

	res = execute(t, runInput, "run", "--select", "9")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "no file selected")

	res = execute(t, runInput, "run", "--select", "1", "--all")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "cannot use both")
}

func TestRunCommand_NothingClickable(t *testing.T) {
	runWorkspace(t)

	res := execute(t, "no files here\n", "run", "--all")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "No clickable files found")
}

func TestChoosePaths(t *testing.T) {
	files := []models.Segment{
		{Path: "a.txt", Kind: models.SegmentFile},
		{Path: "b.txt", Kind: models.SegmentFile},
		{Path: "a.txt", Kind: models.SegmentFile},
	}

	paths, invalid := choosePaths(files, nil, true)
	assert.Equal(t, []string{"a.txt", "b.txt"}, paths)
	assert.Empty(t, invalid)

	paths, invalid = choosePaths(files, []int{3, 0, 2, 1, 4}, false)
	assert.Equal(t, []string{"a.txt", "b.txt"}, paths)
	assert.Equal(t, []int{0, 4}, invalid)
}

func TestRunCommand_RecordsHistory(t *testing.T) {
	runWorkspace(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")
	writeText(t, "picaf.yaml", "history:\n  enabled: true\n  db_path: "+dbPath+"\n")

	res := execute(t, runInput, "--config", "picaf.yaml", "run", "-n", "-c", "cat", "--select", "1", "--select", "2")
	require.NoError(t, res.err)

	_, err := os.Stat(dbPath)
	require.NoError(t, err)

	res = execute(t, "", "--config", "picaf.yaml", "history")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "cat b.txt")
	assert.Contains(t, res.stdout, "cat a.txt")
	assert.Contains(t, res.stdout, "dry-run")
	assert.Less(t, strings.Index(res.stdout, "cat b.txt"), strings.Index(res.stdout, "cat a.txt"), "most recent first")

	res = execute(t, "", "--config", "picaf.yaml", "history", "--limit", "1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "cat b.txt")
	assert.NotContains(t, res.stdout, "cat a.txt")
}


func TestRunCommand_DebugLogsHistoryPath(t *testing.T) {
	runWorkspace(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")
	writeText(t, "picaf.yaml", "history:\n  enabled: true\n  db_path: "+dbPath+"\n")

	res := execute(t, runInput, "--config", "picaf.yaml", "--log-level", "debug", "run", "-n", "-c", "cat", "--select", "1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Recording launches in "+dbPath)
}
