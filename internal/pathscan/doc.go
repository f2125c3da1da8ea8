// Package pathscan finds path-like substrings in a line of text.
//
// The scanner is purely lexical: it never touches the filesystem. For every
// position that starts a line or follows a delimiter it takes the longest run
// of body characters and yields it as a Candidate, so a single line usually
// produces several overlapping candidates:
//
//	"  d e.txt  "  ->  (2, "d e.txt"), (4, "e.txt")
//
// # Character classes
//
// Punctuation delimiters are the ASCII set
//
//	! " # $ % & ' ( ) * + , : ; < = > ? @ [ \ ] ^ ` { | }
//
// and the whitespace delimiters are space, tab, newline, carriage return,
// vertical tab and form feed. A candidate body may contain any byte that is
// not punctuation and not a non-space whitespace character: the plain space
// is allowed inside a body, which is what lets "d e.txt" be recognized, but
// it still anchors the start of the next candidate.
//
// The tilde is a body character by default so "~/a.txt" stays one unit.
// Options.TildeDelimiter makes it a delimiter; the scanner then refuses to
// start a candidate with "/" right after a "~".
//
// # Rejected runs
//
// A run is dropped when it starts with a space, contains "//", or starts with
// "/" immediately after "~". Runs longer than MaxComponentLength characters
// are truncated, never rejected. Trailing spaces are trimmed.
package pathscan
