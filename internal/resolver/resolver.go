// Package resolver confirms which path candidates of a line exist on disk.
//
// For each candidate the resolver splits the text at its last "/", lists the
// directory part (memoized per resolver) and emits every listed name that
// equals the base part or is a prefix of it ending at a delimiter. When
// nothing matches it walks up the candidate one component at a time, which
// recovers "a.txt" from "a.txt/garbage" and "../b/c.txt" from a candidate
// that runs on past the path.
package resolver

import (
	"fmt"
	"iter"
	"strings"

	"github.com/harrison/picaf/internal/fileutil"
	"github.com/harrison/picaf/internal/models"
	"github.com/harrison/picaf/internal/pathscan"
)

// Policy selects how far the resolver walks up a candidate
type Policy string

// Escalation policies
const (
	// PolicyParents retries with the directory part until a match is found or
	// the root is reached
	PolicyParents Policy = "parents"
	// PolicyImmediate checks only the first split of each candidate
	PolicyImmediate Policy = "immediate"
)

// ParsePolicy converts a configuration string to a Policy ("" = parents)
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyParents:
		return PolicyParents, nil
	case PolicyImmediate:
		return PolicyImmediate, nil
	default:
		return "", fmt.Errorf("invalid escalation policy %q, must be one of: parents, immediate", s)
	}
}

// Logger receives diagnostics about directories that could not be read
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

// Options configures a Resolver
type Options struct {
	// Scanner produces candidates (nil = pathscan.Default())
	Scanner *pathscan.Scanner
	// Policy is the escalation policy ("" = PolicyParents)
	Policy Policy
	// Cache is shared listing state (nil = private cache for this resolver)
	Cache *DirCache
	// Logger receives warnings (nil = discard)
	Logger Logger
}

// Resolver turns lines into existing-path matches.
// The resolver only reads the filesystem.
type Resolver struct {
	fsys    fileutil.FS
	scanner *pathscan.Scanner
	policy  Policy
	cache   *DirCache
	logger  Logger
}

// New creates a Resolver reading through fsys
func New(fsys fileutil.FS, opts Options) *Resolver {
	r := &Resolver{
		fsys:    fsys,
		scanner: opts.Scanner,
		policy:  opts.Policy,
		cache:   opts.Cache,
		logger:  opts.Logger,
	}
	if r.scanner == nil {
		r.scanner = pathscan.Default()
	}
	if r.policy == "" {
		r.policy = PolicyParents
	}
	if r.cache == nil {
		r.cache = NewDirCache()
	}
	return r
}

// Matches returns a lazy sequence of the matches of line in non-decreasing
// offset order. Within one offset files come before directories.
func (r *Resolver) Matches(line string) iter.Seq[models.Match] {
	return func(yield func(models.Match) bool) {
		for cand := range r.scanner.Candidates(line) {
			if !r.resolveCandidate(cand, yield) {
				return
			}
		}
	}
}

// Resolve collects every match of line
func (r *Resolver) Resolve(line string) []models.Match {
	var out []models.Match
	for m := range r.Matches(line) {
		out = append(out, m)
	}
	return out
}

// ResolveLines resolves each line, sharing the cache across lines
func (r *Resolver) ResolveLines(lines []string) [][]models.Match {
	out := make([][]models.Match, len(lines))
	for i, line := range lines {
		out[i] = r.Resolve(line)
	}
	return out
}

// Reset forgets every cached listing so the next lookup sees the current
// filesystem
func (r *Resolver) Reset() {
	r.cache.Reset()
}

// Stats reports cache activity
func (r *Resolver) Stats() CacheStats {
	return r.cache.Stats()
}

// Policy returns the escalation policy in use
func (r *Resolver) Policy() Policy {
	return r.policy
}

// resolveCandidate emits the matches of a single candidate. It returns false
// when the consumer stopped the iteration.
func (r *Resolver) resolveCandidate(cand models.Candidate, yield func(models.Match) bool) bool {
	p := cand.Text
	for {
		dir, base := fileutil.SplitPath(p)
		found := false

		if r.cache.IsDir(r.fsys, dir) {
			listing := r.listing(dir)

			for _, name := range listing.Files {
				if r.nameMatches(base, name) {
					found = true
					if !yield(models.Match{Offset: cand.Offset, Kind: models.KindFile, Path: fileutil.JoinPath(dir, name)}) {
						return false
					}
				}
			}
			for _, name := range listing.Dirs {
				if r.nameMatches(base, name) {
					found = true
					if !yield(models.Match{Offset: cand.Offset, Kind: models.KindDirectory, Path: fileutil.JoinPath(dir, name)}) {
						return false
					}
				}
			}
		}

		if found || r.policy == PolicyImmediate || fileutil.IsRoot(dir) {
			return true
		}
		p = dir
	}
}

// nameMatches reports whether name equals base or is a prefix of base that
// ends right before a delimiter
func (r *Resolver) nameMatches(base, name string) bool {
	if base == name {
		return true
	}
	return len(name) < len(base) &&
		strings.HasPrefix(base, name) &&
		r.scanner.IsDelimiter(base[len(name)])
}

func (r *Resolver) listing(dir string) *fileutil.Listing {
	listing, loaded, err := r.cache.Listing(r.fsys, dir)
	if !loaded || r.logger == nil {
		return listing
	}

	if err != nil {
		r.logger.LogWarn(fmt.Sprintf("treating unreadable directory as empty: %v", err))
	}
	for _, entryErr := range listing.Errors {
		r.logger.LogDebug(entryErr.Error())
	}
	return listing
}
