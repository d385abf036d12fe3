package merge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeLinesClean(t *testing.T) {
	r := MergeLines("aaa\nbbb\nccc\n", "aaa\nxxx\nbbb\nccc\n", "aaa\nbbb\nyyy\nccc\n")
	require.True(t, r.Clean)
	require.Equal(t, "aaa\nxxx\nbbb\nyyy\nccc\n", LineText(r))
}

func TestMergeCharsClean(t *testing.T) {
	r := MergeChars("titlle", "Titlle", "title")
	require.True(t, r.Clean)
	require.Equal(t, "Title", CharText(r))
}

func TestMergeLinesFalseConflict(t *testing.T) {
	r := MergeLines("aaa\nbbb\nccc\n", "aaa\nxxx\nccc\n", "aaa\nxxx\nccc\n")
	require.True(t, r.Clean)
	require.Equal(t, "aaa\nxxx\nccc\n", LineText(r))
}

func TestMergeLinesTrueConflict(t *testing.T) {
	r := MergeLines("aaa\nbbb\nccc\n", "aaa\nxxx\nbbb\nccc\n", "aaa\nyyy\nbbb\nccc\n")
	require.False(t, r.Clean)

	var conflicts []Segment[string]
	for _, seg := range r.Segments {
		if seg.Conflict {
			conflicts = append(conflicts, seg)
		}
	}
	require.Len(t, conflicts, 1)
	require.Equal(t, []string{"xxx"}, conflicts[0].Our)
	require.Empty(t, conflicts[0].Ancestor)
	require.Equal(t, []string{"yyy"}, conflicts[0].Their)
}

func TestSerializeLinesConflict(t *testing.T) {
	r := MergeLines("a", "b", "c")
	require.False(t, r.Clean)
	out := SerializeLines(r)
	require.Contains(t, out, "<<<<<<< Your changes:")
	require.Contains(t, out, "b")
	require.Contains(t, out, "======= Their changes:")
	require.Contains(t, out, "c")
	require.Contains(t, out, ">>>>>>> Conflict ends here")
}

func TestSerializeCharsConflict(t *testing.T) {
	r := MergeChars("a", "b", "c")
	require.False(t, r.Clean)
	require.Equal(t, "<b|c>", SerializeChars(r))
}

func TestMergeScenario1NonOverlappingLineEdits(t *testing.T) {
	// spec.md scenario 1: seed "a\nb\nc\n"; rev2 inserts "x" after a; a
	// concurrent edit (base=rev1) inserts "y" after b. Rebasing the second
	// edit against rev2 merges cleanly.
	r := MergeLines("a\nb\nc\n", "a\nb\ny\nc\n", "a\nx\nb\nc\n")
	require.True(t, r.Clean)
	require.Equal(t, "a\nx\nb\ny\nc\n", LineText(r))
}

func TestMergeScenario2OverlappingEditsConflict(t *testing.T) {
	r := MergeLines("a", "c", "b")
	require.False(t, r.Clean)
	require.Len(t, r.Segments, 1)
	require.True(t, r.Segments[0].Conflict)
	require.Equal(t, []string{"c"}, r.Segments[0].Our)
	require.Equal(t, []string{"a"}, r.Segments[0].Ancestor)
	require.Equal(t, []string{"b"}, r.Segments[0].Their)
}
