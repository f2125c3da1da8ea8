package models

import (
	"testing"
	"time"
)

func TestCandidateEnd(t *testing.T) {
	c := Candidate{Offset: 4, Text: "d e.txt"}
	if got := c.End(); got != 11 {
		t.Errorf("End() = %d, want 11", got)
	}
}

func TestMatch(t *testing.T) {
	m := Match{Offset: 2, Kind: KindFile, Path: "a.txt"}
	if !m.IsFile() {
		t.Error("expected file match")
	}
	if got := m.End(); got != 7 {
		t.Errorf("End() = %d, want 7", got)
	}
	if got := m.String(); got != "2:file:a.txt" {
		t.Errorf("String() = %q", got)
	}

	d := Match{Offset: 0, Kind: KindDirectory, Path: "x t"}
	if d.IsFile() {
		t.Error("directory reported as file")
	}
}

func TestRowFiles(t *testing.T) {
	row := Row{Line: 1, Segments: []Segment{
		{Offset: 0, Text: "see ", Kind: SegmentPlain},
		{Offset: 4, Text: "a.txt", Kind: SegmentFile, Path: "a.txt"},
		{Offset: 9, Text: " ", Kind: SegmentPlain},
		{Offset: 10, Text: "docs", Kind: SegmentDirectory, Path: "docs"},
	}}

	files := row.Files()
	if len(files) != 1 || files[0].Path != "a.txt" {
		t.Errorf("Files() = %+v", files)
	}
	if row.Segments[3].Clickable() {
		t.Error("directories are not clickable")
	}
}

func TestSummaryAdd(t *testing.T) {
	s := Summary{Duration: time.Second}
	s.Add(Match{Kind: KindFile})
	s.Add(Match{Kind: KindFile})
	s.Add(Match{Kind: KindDirectory})

	if s.Matches != 3 || s.Files != 2 || s.Directories != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
}
