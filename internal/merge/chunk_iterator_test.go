package merge

import (
	"testing"

	"github.com/rpggio/wikicore/internal/diffscript"
	"github.com/stretchr/testify/require"
)

func chars(s string) []rune { return []rune(s) }

func collectChunks(o, a, b string) []Chunk[rune] {
	oa := diffscript.Diff(chars(o), chars(a))
	ob := diffscript.Diff(chars(o), chars(b))
	return NewChunkIterator(oa, ob).Collect()
}

func TestChunkIteratorSimpleCase(t *testing.T) {
	chunks := collectChunks("aaabbbccc", "aaaxxxbbbccc", "aaabbbyyyccc")
	require.Len(t, chunks, 5)
	require.False(t, hasConflict(chunks[0]))
	require.True(t, hasConflict(chunks[1]) || onlyOneSideChanged(chunks[1]))
}

func TestChunkIteratorRealConflict(t *testing.T) {
	chunks := collectChunks("aaabbbccc", "aaaxxxccc", "aaayyyccc")
	require.Len(t, chunks, 3)
}

func TestChunkIteratorAdditionalAtEnd(t *testing.T) {
	chunks := collectChunks("aaabbbccc", "aaabbbccc", "aaabbbcccddd")
	require.Len(t, chunks, 2)
	require.Empty(t, chunks[1].Our)
}

func TestChunkIteratorCompletelyUnrelated(t *testing.T) {
	chunks := collectChunks("aaa", "bbb", "ccc")
	require.Len(t, chunks, 1)
}

func hasConflict(c Chunk[rune]) bool {
	seg := resolve(c)
	return seg.Conflict
}

func onlyOneSideChanged(c Chunk[rune]) bool {
	return unchanged(c.Our) || unchanged(c.Their)
}
