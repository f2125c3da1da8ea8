package resolver

import (
	"path"
	"strings"
	"sync"

	"github.com/harrison/picaf/internal/fileutil"
)

// CacheStats reports how much filesystem work a cache has absorbed
type CacheStats struct {
	Listings  int // Directories listed
	DirChecks int // Directory existence checks performed
	Hits      int // Lookups answered from memory
}

// DirCache memoizes directory listings and directory-existence checks keyed by
// the cleaned directory string, so "./sub" and "sub" share one entry. Entries are never
// invalidated except by Reset; the cache reflects the filesystem as it was
// when each directory was first looked at.
type DirCache struct {
	mu       sync.Mutex
	listings map[string]*fileutil.Listing
	isDir    map[string]bool
	stats    CacheStats
}

// NewDirCache creates an empty cache
func NewDirCache() *DirCache {
	return &DirCache{
		listings: make(map[string]*fileutil.Listing),
		isDir:    make(map[string]bool),
	}
}

// Listing returns the cached listing of dir, listing it through fsys on first
// use; loaded is true for that first call. A directory that cannot be read is
// cached as empty and the error is returned on the first call only.
func (c *DirCache) Listing(fsys fileutil.FS, dir string) (listing *fileutil.Listing, loaded bool, err error) {
	key := cacheKey(dir)

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.listings[key]; ok {
		c.stats.Hits++
		return cached, false, nil
	}

	c.stats.Listings++
	listing, err = fileutil.ListDirectory(fsys, dir)
	if err != nil {
		listing = &fileutil.Listing{Dir: dir}
	}
	c.listings[key] = listing

	return listing, true, err
}

// IsDir reports whether dir names an existing directory, following symlinks
func (c *DirCache) IsDir(fsys fileutil.FS, dir string) bool {
	if dir == "" {
		return true
	}

	key := cacheKey(dir)

	c.mu.Lock()
	defer c.mu.Unlock()

	if ok, seen := c.isDir[key]; seen {
		c.stats.Hits++
		return ok
	}
	if _, listed := c.listings[key]; listed {
		c.stats.Hits++
		return true
	}

	c.stats.DirChecks++
	info, err := fsys.Stat(dir)
	ok := err == nil && info.IsDir()
	c.isDir[key] = ok

	return ok
}

// cacheKey cleans dir for lookup. Paths with ".." keep their spelling since
// "missing/.." does not exist even though it cleans to ".".
func cacheKey(dir string) string {
	for _, elem := range strings.Split(dir, "/") {
		if elem == ".." {
			return dir
		}
	}
	return path.Clean(dir)
}

// Stats returns a snapshot of the cache counters
func (c *DirCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Reset drops every cached entry and counter
func (c *DirCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listings = make(map[string]*fileutil.Listing)
	c.isDir = make(map[string]bool)
	c.stats = CacheStats{}
}
