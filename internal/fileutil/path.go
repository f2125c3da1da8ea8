package fileutil

import "strings"

// SplitPath splits p at its last "/" into a directory and a base name.
// Trailing slashes are removed from the directory unless it consists only of
// slashes, so SplitPath("/a") returns ("/", "a") and SplitPath("a") returns
// ("", "a").
func SplitPath(p string) (dir, base string) {
	i := strings.LastIndexByte(p, '/') + 1
	dir, base = p[:i], p[i:]
	if trimmed := strings.TrimRight(dir, "/"); trimmed != "" {
		dir = trimmed
	}
	return dir, base
}

// JoinPath appends name to dir with a single "/" and no cleaning
func JoinPath(dir, name string) string {
	switch {
	case dir == "":
		return name
	case strings.HasPrefix(name, "/"):
		return name
	case strings.HasSuffix(dir, "/"):
		return dir + name
	default:
		return dir + "/" + name
	}
}

// IsRoot reports whether dir is empty or the filesystem root
func IsRoot(dir string) bool {
	return dir == "" || dir == "/"
}
