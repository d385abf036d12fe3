package merge

import (
	"strings"

	"github.com/rpggio/wikicore/internal/diffscript"
)

// MergeResult is the outcome of a three-way merge: either every chunk
// resolved cleanly (Clean), or at least one chunk conflicted (Conflicted,
// holding every segment — clean and conflicting — in document order).
type MergeResult[T any] struct {
	Clean    bool
	Segments []Segment[T]
}

// IsConflicted reports whether any segment in the result is a conflict.
func (r MergeResult[T]) IsConflicted() bool {
	return !r.Clean
}

func merge[T comparable](ancestor, our, their []T) MergeResult[T] {
	ourScript := diffscript.Diff(ancestor, our)
	theirScript := diffscript.Diff(ancestor, their)

	it := NewChunkIterator(ourScript, theirScript)
	clean := true
	var segments []Segment[T]
	for {
		chunk, ok := it.Next()
		if !ok {
			break
		}
		seg := resolve(chunk)
		if seg.Conflict {
			clean = false
		}
		segments = append(segments, seg)
	}
	return MergeResult[T]{Clean: clean, Segments: segments}
}

// MergeLines performs a three-way merge at line granularity, used for
// article bodies.
func MergeLines(ancestor, our, their string) MergeResult[string] {
	return merge(splitLines(ancestor), splitLines(our), splitLines(their))
}

// MergeChars performs a three-way merge at character granularity, used for
// article titles.
func MergeChars(ancestor, our, their string) MergeResult[rune] {
	return merge([]rune(ancestor), []rune(our), []rune(their))
}

// Resolved joins a clean MergeResult's segments back into their original
// sequence, panicking if the result is conflicted — callers must check Clean
// first.
func Resolved[T any](r MergeResult[T]) []T {
	if !r.Clean {
		panic("merge: Resolved called on a conflicted result")
	}
	var out []T
	for _, seg := range r.Segments {
		out = append(out, seg.Resolved...)
	}
	return out
}

// LineText returns the joined clean body for a line-granularity result.
func LineText(r MergeResult[string]) string {
	return strings.Join(Resolved(r), "\n")
}

// CharText returns the joined clean title for a character-granularity result.
func CharText(r MergeResult[rune]) string {
	return string(Resolved(r))
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
