package fileutil

import (
	"fmt"
	"os"
	"sort"
)

// CurrentDir is the directory listed for paths without a directory part
const CurrentDir = "."

// Listing holds the entries of one directory split by kind
type Listing struct {
	// Dir is the directory as requested ("" means the current directory)
	Dir string
	// Files contains basenames of regular files, sorted
	Files []string
	// Dirs contains basenames of directories, sorted
	Dirs []string
	// Errors contains non-fatal errors from classifying individual entries
	Errors []error
}

// ListDirectory reads dir once and classifies every entry.
// An empty dir lists the current directory. Symlinked entries are classified
// by their target.
func ListDirectory(fsys FS, dir string) (*Listing, error) {
	target := dir
	if target == "" {
		target = CurrentDir
	}

	entries, err := fsys.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %q: %w", target, err)
	}

	listing := &Listing{
		Dir:   dir,
		Files: make([]string, 0, len(entries)),
		Dirs:  make([]string, 0),
	}

	for _, entry := range entries {
		name := entry.Name()
		mode := entry.Mode()

		// Follow symlinks the way a stat-based existence check would
		if mode&os.ModeSymlink != 0 {
			info, err := fsys.Stat(JoinPath(target, name))
			if err != nil {
				listing.Errors = append(listing.Errors, fmt.Errorf("failed to stat %s: %w", JoinPath(dir, name), err))
				continue
			}
			mode = info.Mode()
		}

		switch {
		case mode.IsRegular():
			listing.Files = append(listing.Files, name)
		case mode.IsDir():
			listing.Dirs = append(listing.Dirs, name)
		}
	}

	// Sort for deterministic match order
	sort.Strings(listing.Files)
	sort.Strings(listing.Dirs)

	return listing, nil
}

