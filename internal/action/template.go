// Package action builds and runs the command launched for a chosen file.
//
// A command is split shell-style into arguments. "{N}" placeholders are
// filled from the captures of the filter pattern matched at the start of the
// file name; "{0}" is the whole match, or the file name when there is no
// pattern. A command without placeholders gets the file name appended.
package action

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/kballard/go-shellquote"
)

// Errors returned while preparing a command
var (
	ErrEmptyCommand      = errors.New("empty command")
	ErrNoCapture         = errors.New("no capture in pattern")
	ErrNotEnoughCaptures = errors.New("not enough captures in pattern")
	ErrPatternMismatch   = errors.New("pattern does not match file name")
)

var placeholder = regexp.MustCompile(`\{(\d+)\}`)

// Template is a parsed command line
type Template struct {
	args       []string
	pattern    *regexp.Regexp
	maxCapture int // -1 when the command has no placeholder
}

// ParseCommand splits command and checks its placeholders against pattern.
// pattern may be nil.
func ParseCommand(command string, pattern *regexp.Regexp) (*Template, error) {
	args, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", command, err)
	}
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}

	maxCapture := -1
	for _, m := range placeholder.FindAllStringSubmatch(command, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("invalid placeholder %s: %w", m[0], err)
		}
		maxCapture = max(maxCapture, n)
	}

	if maxCapture > 0 {
		if pattern == nil {
			return nil, fmt.Errorf("command uses {%d}: %w", maxCapture, ErrNoCapture)
		}
		if pattern.NumSubexp() < maxCapture {
			return nil, fmt.Errorf("command uses {%d} but pattern has %d: %w", maxCapture, pattern.NumSubexp(), ErrNotEnoughCaptures)
		}
	}

	return &Template{args: args, pattern: pattern, maxCapture: maxCapture}, nil
}

// MaxCapture returns the highest placeholder number, or -1 if there is none
func (t *Template) MaxCapture() int {
	return t.maxCapture
}

// Build returns the argument vector for file
func (t *Template) Build(file string) ([]string, error) {
	if t.maxCapture < 0 {
		out := make([]string, 0, len(t.args)+1)
		out = append(out, t.args...)
		return append(out, file), nil
	}

	groups := []string{file}
	if t.pattern != nil {
		var err error
		groups, err = t.captures(file)
		if err != nil {
			return nil, err
		}
	} else if t.maxCapture != 0 {
		return nil, ErrNoCapture
	}

	out := make([]string, len(t.args))
	for i, arg := range t.args {
		out[i] = placeholder.ReplaceAllStringFunc(arg, func(ph string) string {
			n, _ := strconv.Atoi(ph[1 : len(ph)-1])
			if n < len(groups) {
				return groups[n]
			}
			return ph
		})
	}
	return out, nil
}

// captures matches the pattern at the start of file and returns groups
// 0..maxCapture. Groups that did not take part in the match are empty.
func (t *Template) captures(file string) ([]string, error) {
	loc := t.pattern.FindStringSubmatchIndex(file)
	if loc == nil || loc[0] != 0 {
		return nil, fmt.Errorf("%s: %w", file, ErrPatternMismatch)
	}

	last := 0
	for g := 1; g*2 < len(loc); g++ {
		if loc[2*g] >= 0 {
			last = g
		}
	}
	if last < t.maxCapture {
		return nil, fmt.Errorf("%s: %w", file, ErrNotEnoughCaptures)
	}

	groups := make([]string, t.maxCapture+1)
	for g := range groups {
		if loc[2*g] >= 0 {
			groups[g] = file[loc[2*g]:loc[2*g+1]]
		}
	}
	return groups, nil
}

// String renders the unexpanded command shell-quoted
func (t *Template) String() string {
	return shellquote.Join(t.args...)
}
