// Package fileutil provides the filesystem plumbing used by the resolver.
//
// # Main Components
//
// FS - the read-only view of a filesystem the resolver needs (Stat and
// ReadDir). Any go-billy filesystem satisfies it; NativeFS wraps the host
// filesystem so relative paths resolve against the process working
// directory, and memfs can stand in during tests.
//
// ListDirectory - lists one directory and splits its entries into file and
// directory basenames. Symlinks are followed, entries that are neither
// regular files nor directories (sockets, devices, dangling links) are
// dropped. Per-entry stat failures are collected in Listing.Errors and do
// not abort the listing.
//
// SplitPath / JoinPath - split and join with the conventions of the path
// text itself: SplitPath keeps a leading "/" and JoinPath never cleans, so
// "./d e" joined with "f g.txt" stays "./d e/f g.txt" exactly as the user
// typed it.
//
// ReadLines - reads text input one line at a time with trailing whitespace
// stripped.
package fileutil
