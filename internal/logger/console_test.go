package logger

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/harrison/picaf/internal/models"
)

// TestNewConsoleLogger verifies the constructor creates a ConsoleLogger with the provided writer.
func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewConsoleLogger(buf, "info")

		if logger.writer != buf {
			t.Error("writer not set correctly")
		}
		if logger.logLevel != "info" {
			t.Errorf("expected log level %q, got %q", "info", logger.logLevel)
		}
		if logger.colorOutput {
			t.Error("expected color disabled for a buffer")
		}
	})

	t.Run("with nil writer", func(t *testing.T) {
		logger := NewConsoleLogger(nil, "info")
		if logger.writer != nil {
			t.Error("expected nil writer")
		}
		logger.LogError("discarded")
	})
}

func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		skipped  []string
	}{
		{level: "trace", expected: []string{"[TRACE]", "[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"}},
		{level: "debug", expected: []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"}, skipped: []string{"[TRACE]"}},
		{level: "info", expected: []string{"[INFO]", "[WARN]", "[ERROR]"}, skipped: []string{"[TRACE]", "[DEBUG]"}},
		{level: "warn", expected: []string{"[WARN]", "[ERROR]"}, skipped: []string{"[INFO]"}},
		{level: "error", expected: []string{"[ERROR]"}, skipped: []string{"[WARN]"}},
		{level: "bogus", expected: []string{"[INFO]"}, skipped: []string{"[DEBUG]"}},
		{level: "  WARN ", expected: []string{"[WARN]"}, skipped: []string{"[INFO]"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.level)

			logger.LogTrace("t")
			logger.LogDebug("d")
			logger.LogInfo("i")
			logger.LogWarn("w")
			logger.LogError("e")

			out := buf.String()
			for _, want := range tt.expected {
				if !strings.Contains(out, want) {
					t.Errorf("expected %s in output %q", want, out)
				}
			}
			for _, skip := range tt.skipped {
				if strings.Contains(out, skip) {
					t.Errorf("did not expect %s in output %q", skip, out)
				}
			}
		})
	}
}

func TestTimestampFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogInfo("hello")

	pattern := regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \[INFO\] hello\n$`)
	if !pattern.MatchString(buf.String()) {
		t.Errorf("unexpected format: %q", buf.String())
	}
}

func TestLogSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogSummary(models.Summary{
		Lines:       3,
		Matches:     4,
		Files:       3,
		Directories: 1,
		Listings:    2,
		CacheHits:   7,
		Duration:    1500 * time.Millisecond,
	})

	want := "Resolved: lines: 3, files: 3, dirs: 1, listings: 2, hits: 7 (1s)"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("expected %q in %q", want, buf.String())
	}

	buf.Reset()
	NewConsoleLogger(buf, "warn").LogSummary(models.Summary{Lines: 1})
	if buf.Len() != 0 {
		t.Errorf("summary should be filtered at warn level, got %q", buf.String())
	}
}

func TestFormatColorizedSummary(t *testing.T) {
	out := formatColorizedSummary(models.Summary{Lines: 2, Files: 0, Directories: 1})
	for _, label := range []string{"lines", "files", "dirs", "listings", "hits"} {
		if !strings.Contains(out, label) {
			t.Errorf("expected %q in %q", label, out)
		}
	}
}

func TestDurationFormatting(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0ms"},
		{250 * time.Millisecond, "250ms"},
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m30s"},
		{2 * time.Minute, "2m"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestConcurrentLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.LogInfo("concurrent")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Errorf("expected 20 lines, got %d", len(lines))
	}
}

func TestIsValidLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		if !IsValidLevel(level) {
			t.Errorf("%q should be valid", level)
		}
	}
	if IsValidLevel("INFO") || IsValidLevel("verbose") {
		t.Error("only lowercase known levels are valid")
	}
}

func TestLoggersSatisfyInterface(t *testing.T) {
	var _ Logger = NewConsoleLogger(nil, "info")
	var _ Logger = NewNoOpLogger()
}
