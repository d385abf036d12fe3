package diffscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffIdentical(t *testing.T) {
	ops := Diff([]string{"a", "b", "c"}, []string{"a", "b", "c"})
	for _, op := range ops {
		require.Equal(t, Both, op.Kind)
	}
	require.Len(t, ops, 3)
}

func TestDiffInsertAndDelete(t *testing.T) {
	ops := Diff([]string{"a", "b", "c"}, []string{"a", "x", "c"})
	require.Equal(t, []Op[string]{
		{Kind: Both, Value: "a"},
		{Kind: Left, Value: "b"},
		{Kind: Right, Value: "x"},
		{Kind: Both, Value: "c"},
	}, ops)
}

func TestDiffCompletelyUnrelated(t *testing.T) {
	ops := Diff([]string{"a", "b"}, []string{"x", "y"})
	require.Len(t, ops, 4)
	kinds := map[Kind]int{}
	for _, op := range ops {
		kinds[op.Kind]++
	}
	require.Equal(t, 2, kinds[Left])
	require.Equal(t, 2, kinds[Right])
}

func TestDiffEmptySides(t *testing.T) {
	require.Empty(t, Diff([]string{}, []string{}))

	ops := Diff([]string{}, []string{"a"})
	require.Equal(t, []Op[string]{{Kind: Right, Value: "a"}}, ops)

	ops = Diff([]string{"a"}, []string{})
	require.Equal(t, []Op[string]{{Kind: Left, Value: "a"}}, ops)
}
