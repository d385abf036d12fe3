package merge

import "github.com/rpggio/wikicore/internal/diffscript"

// Segment is one resolved unit of a merge: either a clean run of items, or a
// structured three-way conflict.
type Segment[T any] struct {
	Conflict bool

	// Resolved holds the clean run when Conflict is false.
	Resolved []T

	// Our, Ancestor, Their hold the three competing projections when
	// Conflict is true.
	Our      []T
	Ancestor []T
	Their    []T
}

func chooseOurs[T any](ops []diffscript.Op[T]) []T {
	out := make([]T, 0, len(ops))
	for _, op := range ops {
		if op.Kind == diffscript.Both || op.Kind == diffscript.Right {
			out = append(out, op.Value)
		}
	}
	return out
}

func chooseAncestor[T any](ops []diffscript.Op[T]) []T {
	out := make([]T, 0, len(ops))
	for _, op := range ops {
		if op.Kind == diffscript.Both || op.Kind == diffscript.Left {
			out = append(out, op.Value)
		}
	}
	return out
}

func unchanged[T any](ops []diffscript.Op[T]) bool {
	for _, op := range ops {
		if op.Kind != diffscript.Both {
			return false
		}
	}
	return true
}

func sameScript[T comparable](a, b []diffscript.Op[T]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// resolve classifies one chunk into a clean run or a conflict, per spec.md
// §4.2: identical edits on both sides, or no change on either side, resolve
// cleanly; anything else is a real conflict.
func resolve[T comparable](chunk Chunk[T]) Segment[T] {
	if sameScript(chunk.Our, chunk.Their) {
		return Segment[T]{Resolved: chooseOurs(chunk.Our)}
	}
	if unchanged(chunk.Our) {
		return Segment[T]{Resolved: chooseOurs(chunk.Their)}
	}
	if unchanged(chunk.Their) {
		return Segment[T]{Resolved: chooseOurs(chunk.Our)}
	}
	return Segment[T]{
		Conflict: true,
		Our:      chooseOurs(chunk.Our),
		Ancestor: chooseAncestor(chunk.Our),
		Their:    chooseOurs(chunk.Their),
	}
}
