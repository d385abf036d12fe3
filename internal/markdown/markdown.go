// Package markdown implements the markdown_to_fts collaborator contract:
// rendering article bodies down to the plain text the search index tokenizes.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// ToFTS renders Markdown source to plain text suitable for full-text
// indexing: only text content survives, link destinations are appended in
// parentheses after their link text, and the characters '&', '<', '>' are
// mapped to a space so the result is always safe to embed verbatim.
func ToFTS(src string) string {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Kind() == ast.KindLink {
				link := n.(*ast.Link)
				b.WriteString(" (")
				b.Write(link.Destination)
				b.WriteString(")")
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(source))
		case *ast.String:
			b.Write(node.Value)
		default:
			if n.Type() == ast.TypeBlock {
				b.WriteString(" ")
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.Map(func(r rune) rune {
		switch r {
		case '&', '<', '>':
			return ' '
		default:
			return r
		}
	}, b.String())
}
