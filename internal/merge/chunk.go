package merge

import "github.com/rpggio/wikicore/internal/diffscript"

// Chunk is a maximal aligned range of two edit scripts — ours (original to
// our edit) and theirs (original to their edit) — that is either entirely
// stable (both sides agree, nothing to resolve) or entirely unstable (needs
// three-way resolution).
type Chunk[T any] struct {
	Our   []diffscript.Op[T]
	Their []diffscript.Op[T]
}
