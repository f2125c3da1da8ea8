package pathscan

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/harrison/picaf/internal/models"
)

// DefaultMaxComponentLength bounds the length of a single candidate, in characters
const DefaultMaxComponentLength = 256

const (
	punctuation     = "!\"#$%&'()*+,:;<=>?@[\\]^`{|}"
	whitespace      = " \t\n\r\v\f"
	nonSpaceBreaks  = "\t\n\r\v\f"
	doubleSeparator = "//"
)

// Options configures a Scanner
type Options struct {
	// MaxComponentLength truncates runs to this many characters (0 = default 256)
	MaxComponentLength int

	// TildeDelimiter treats "~" as punctuation
	TildeDelimiter bool
}

// Scanner produces path candidates from lines of text.
// A Scanner is immutable after construction and safe for concurrent use.
type Scanner struct {
	delimiter [256]bool // bytes that end a run and anchor the next one
	breaks    [256]bool // bytes that may not appear inside a run
	maxLen    int
}

// New creates a Scanner with the given options
func New(opts Options) *Scanner {
	s := &Scanner{maxLen: opts.MaxComponentLength}
	if s.maxLen <= 0 {
		s.maxLen = DefaultMaxComponentLength
	}

	punct := punctuation
	if opts.TildeDelimiter {
		punct += "~"
	}
	for i := 0; i < len(punct); i++ {
		s.delimiter[punct[i]] = true
		s.breaks[punct[i]] = true
	}
	for i := 0; i < len(whitespace); i++ {
		s.delimiter[whitespace[i]] = true
	}
	for i := 0; i < len(nonSpaceBreaks); i++ {
		s.breaks[nonSpaceBreaks[i]] = true
	}

	return s
}

// Default returns a Scanner with default options
func Default() *Scanner {
	return New(Options{})
}

// IsDelimiter reports whether b is a punctuation or whitespace delimiter
func (s *Scanner) IsDelimiter(b byte) bool {
	return s.delimiter[b]
}

// MaxComponentLength returns the truncation limit in characters
func (s *Scanner) MaxComponentLength() int {
	return s.maxLen
}

// Candidates returns a lazy sequence of candidates in ascending offset order.
// The sequence can be ranged over any number of times.
func (s *Scanner) Candidates(line string) iter.Seq[models.Candidate] {
	return func(yield func(models.Candidate) bool) {
		for i := 0; i < len(line); i++ {
			if i > 0 && !s.delimiter[line[i-1]] {
				continue
			}
			text, ok := s.candidateAt(line, i)
			if !ok {
				continue
			}
			if !yield(models.Candidate{Offset: i, Text: text}) {
				return
			}
		}
	}
}

// Scan collects every candidate of the line
func (s *Scanner) Scan(line string) []models.Candidate {
	var out []models.Candidate
	for c := range s.Candidates(line) {
		out = append(out, c)
	}
	return out
}

// candidateAt matches the longest run starting at i and applies the
// acceptance rules
func (s *Scanner) candidateAt(line string, i int) (string, bool) {
	end := i
	for n := 0; n < s.maxLen && end < len(line); n++ {
		if s.breaks[line[end]] {
			break
		}
		_, size := utf8.DecodeRuneInString(line[end:])
		end += size
	}

	run := strings.TrimRight(line[i:end], " ")
	switch {
	case run == "":
		return "", false
	case run[0] == ' ':
		return "", false
	case run[0] == '/' && i > 0 && line[i-1] == '~':
		return "", false
	case strings.Contains(run, doubleSeparator):
		return "", false
	}

	return run, true
}
