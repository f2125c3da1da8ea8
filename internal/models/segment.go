package models

// SegmentKind tells a renderer how a piece of a line should be shown
type SegmentKind string

// Segment kind constants
const (
	SegmentPlain     SegmentKind = "plain"     // Ordinary text
	SegmentFile      SegmentKind = "file"      // Clickable file
	SegmentDirectory SegmentKind = "directory" // Existing directory, shown but not launchable
)

// Segment is a contiguous slice of a line. Concatenating the Text of every
// segment of a row in order reproduces the line.
type Segment struct {
	Offset int         `json:"offset" yaml:"offset"`
	Text   string      `json:"text" yaml:"text"`
	Kind   SegmentKind `json:"kind" yaml:"kind"`
	Path   string      `json:"path,omitempty" yaml:"path,omitempty"` // Resolved path for file/directory segments
}

// Clickable returns true if the segment can be launched
func (s Segment) Clickable() bool {
	return s.Kind == SegmentFile
}

// Row is the segmented form of a single input line
type Row struct {
	Line     int       `json:"line" yaml:"line"` // 1-based line number
	Segments []Segment `json:"segments" yaml:"segments"`
}

// Files returns the clickable segments of the row in order
func (r Row) Files() []Segment {
	var files []Segment
	for _, seg := range r.Segments {
		if seg.Clickable() {
			files = append(files, seg)
		}
	}
	return files
}
