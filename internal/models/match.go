package models

import "fmt"

// Kind classifies a resolved path
type Kind string

// Path kind constants
const (
	KindFile      Kind = "file"      // Regular file (after following symlinks)
	KindDirectory Kind = "directory" // Directory (after following symlinks)
)

// Candidate is a path-like substring found in one line of text.
// Offset is a byte offset into the line.
type Candidate struct {
	Offset int    `json:"offset" yaml:"offset"` // Byte offset of the first character
	Text   string `json:"text" yaml:"text"`     // Matched text, never empty
}

// End returns the offset just past the candidate text
func (c Candidate) End() int {
	return c.Offset + len(c.Text)
}

// Match is a candidate (or a delimiter-bounded prefix of one) confirmed to
// exist on the filesystem
type Match struct {
	Offset int    `json:"offset" yaml:"offset"` // Offset of the candidate the match came from
	Kind   Kind   `json:"kind" yaml:"kind"`     // File or directory
	Path   string `json:"path" yaml:"path"`     // Resolved path as it is spelled in the line
}

// End returns the offset just past the matched path
func (m Match) End() int {
	return m.Offset + len(m.Path)
}

// IsFile returns true if the match names a regular file
func (m Match) IsFile() bool {
	return m.Kind == KindFile
}

// String formats the match as "offset:kind:path"
func (m Match) String() string {
	return fmt.Sprintf("%d:%s:%s", m.Offset, m.Kind, m.Path)
}
