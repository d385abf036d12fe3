package merge

import "github.com/rpggio/wikicore/internal/diffscript"

// ChunkIterator splits two edit scripts produced against a common ancestor
// into a sequence of chunks, each either stable (both scripts simultaneously
// show Both) or unstable. It is purely index-based: each returned Chunk
// borrows sub-slices of the original scripts, no allocation beyond the
// slicing itself.
type ChunkIterator[T any] struct {
	our   []diffscript.Op[T]
	their []diffscript.Op[T]
}

// NewChunkIterator builds an iterator over the our/their edit scripts.
func NewChunkIterator[T any](our, their []diffscript.Op[T]) *ChunkIterator[T] {
	return &ChunkIterator[T]{our: our, their: their}
}

func isBoth[T any](ops []diffscript.Op[T], i int) bool {
	return i < len(ops) && ops[i].Kind == diffscript.Both
}

func isRight[T any](ops []diffscript.Op[T], i int) bool {
	return i < len(ops) && ops[i].Kind == diffscript.Right
}

func isLeft[T any](ops []diffscript.Op[T], i int) bool {
	return i < len(ops) && ops[i].Kind == diffscript.Left
}

// Next returns the next chunk, or (Chunk{}, false) once both scripts are
// exhausted.
func (it *ChunkIterator[T]) Next() (Chunk[T], bool) {
	// Stable run: both scripts simultaneously show Both.
	i := 0
	for isBoth(it.our, i) && isBoth(it.their, i) {
		i++
	}
	if i > 0 {
		chunk := Chunk[T]{Our: it.our[:i], Their: it.their[:i]}
		it.our = it.our[i:]
		it.their = it.their[i:]
		return chunk, true
	}

	// Unstable run: advance until both again simultaneously reach Both, or
	// both scripts are exhausted.
	oi, ti := 0, 0
	for {
		switch {
		case isRight(it.our, oi):
			oi++
		case isRight(it.their, ti):
			ti++
		case isLeft(it.our, oi) && ti < len(it.their):
			oi++
			ti++
		case isLeft(it.their, ti) && oi < len(it.our):
			oi++
			ti++
		case isBoth(it.our, oi) && isBoth(it.their, ti):
			chunk := Chunk[T]{Our: it.our[:oi], Their: it.their[:ti]}
			it.our = it.our[oi:]
			it.their = it.their[ti:]
			return chunk, true
		default:
			if len(it.our) > 0 || len(it.their) > 0 {
				chunk := Chunk[T]{Our: it.our, Their: it.their}
				it.our = nil
				it.their = nil
				return chunk, true
			}
			return Chunk[T]{}, false
		}
	}
}

// Collect drains the iterator into a slice.
func (it *ChunkIterator[T]) Collect() []Chunk[T] {
	var chunks []Chunk[T]
	for {
		c, ok := it.Next()
		if !ok {
			return chunks
		}
		chunks = append(chunks, c)
	}
}
