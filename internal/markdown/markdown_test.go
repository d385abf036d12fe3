package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToFTSPlainParagraph(t *testing.T) {
	out := ToFTS("Hello world.")
	require.Contains(t, out, "Hello world.")
}

func TestToFTSStripsHeadingMarkup(t *testing.T) {
	out := ToFTS("# Title\n\nBody text.")
	require.NotContains(t, out, "#")
	require.Contains(t, out, "Title")
	require.Contains(t, out, "Body text.")
}

func TestToFTSAppendsLinkDestination(t *testing.T) {
	out := ToFTS("See [the docs](https://example.com/docs).")
	require.Contains(t, out, "the docs")
	require.Contains(t, out, "https://example.com/docs")
}

func TestToFTSMapsReservedChars(t *testing.T) {
	out := ToFTS("A & B < C > D")
	require.False(t, strings.ContainsAny(out, "&<>"))
}
