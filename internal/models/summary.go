package models

import "time"

// Summary aggregates what one picaf invocation found
type Summary struct {
	Lines       int           // Input lines processed
	Matches     int           // Resolved matches, files and directories
	Files       int           // Matches of kind file
	Directories int           // Matches of kind directory
	Listings    int           // Directories listed on disk
	CacheHits   int           // Lookups answered by the listing cache
	Duration    time.Duration // Wall time spent resolving
}

// Add counts one match
func (s *Summary) Add(m Match) {
	s.Matches++
	if m.IsFile() {
		s.Files++
	} else {
		s.Directories++
	}
}
