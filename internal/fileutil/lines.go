package fileutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// maxLineSize bounds a single input line
const maxLineSize = 16 * 1024 * 1024

// ReadLines reads every line of r with trailing whitespace removed
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRightFunc(scanner.Text(), unicode.IsSpace))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}

// IsStdin reports whether path names standard input
func IsStdin(path string) bool {
	return path == "" || path == "-"
}

// ReadLinesFromFile reads the lines of a file, or of stdin when path is "" or "-"
func ReadLinesFromFile(path string, stdin io.Reader) ([]string, error) {
	if IsStdin(path) {
		return ReadLines(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return ReadLines(f)
}
