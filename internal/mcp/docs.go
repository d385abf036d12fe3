package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `wikicore stores articles as an append-only history of immutable revisions.

Core concepts (keep this mental model small):
- Article: identified internally by article_id; has a linear history of revisions.
- Revision: an immutable (title, body, slug, theme) snapshot; exactly one per article is "latest".
- Slug: the URL-visible name of an article's latest revision. Slugs can move between articles over time; an old slug redirects to the article's current one.
- sequence_number: a store-wide monotonic counter over every revision ever written, used for pagination.

Rules of engagement:
1) Create: call create_article with a title and body. Pass slug only to request a specific one (or "" for the reserved front-page slug); otherwise one is derived from the title.
2) Read: get_revision(article_id, revision) for a specific past revision, or omit revision for the current head.
3) Resolve links: lookup_slug(slug) before rendering a link — it may be a hit, a redirect to the article's current slug, or a miss.
4) Edit: update_article(article_id, base_revision, title, body) submits an edit made against base_revision. If other revisions have landed since, the store rebases the edit forward automatically; if that rebase can't resolve cleanly, the call returns a conflict instead of committing, and the caller must re-present it for manual resolution.
5) Browse: query_revisions for paginated history, search for full-text search over current article content.

Docs (progressive disclosure):
- wikicore://docs/index
- wikicore://docs/concepts
- wikicore://docs/workflows/editing
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "wikicore://docs/index",
		Name:        "docs_index",
		Title:       "wikicore docs index",
		Description: "Entry point for agent-facing docs.",
		Content: `# wikicore: Agent Docs Index

## Quick start

1. ` + "`create_article`" + ` to start a new article.
2. ` + "`get_revision`" + ` / ` + "`lookup_slug`" + ` / ` + "`search`" + ` to read existing ones.
3. ` + "`update_article`" + ` to edit; watch for a returned conflict.

## Docs (read on demand)

- ` + "`wikicore://docs/concepts`" + ` — revisions, slugs, sequence numbers.
- ` + "`wikicore://docs/workflows/editing`" + ` — the rebase-and-conflict loop.
`,
	},
	{
		URI:         "wikicore://docs/concepts",
		Name:        "docs_concepts",
		Title:       "Concepts",
		Description: "Revisions, slugs, and sequence numbers.",
		Content: `# Concepts

- **Article**: a stable identity (article_id) with a linear revision history.
- **Revision**: immutable once written; only the "latest" flag moves.
- **Slug**: derived from the title, disambiguated with a "-2", "-3", ... suffix when already taken. The empty slug is reserved for the front page.
- **Redirect**: when an article's slug changes, the old slug still resolves — lookup_slug reports it as a redirect to the article's current slug rather than a hit.
- **sequence_number**: increments across every revision of every article; used as the pagination cursor for query_revisions.
`,
	},
	{
		URI:         "wikicore://docs/workflows/editing",
		Name:        "docs_workflow_editing",
		Title:       "Workflow: editing",
		Description: "The rebase-and-conflict loop update_article runs.",
		Content: `# Workflow: editing

1. Read the current revision you intend to edit (get_revision with no revision number gets head).
2. Call update_article with that revision's number as base_revision.
3. If nobody else has written to the article since, your edit commits as the next revision.
4. If someone has, the store replays your edit forward across each intervening revision with a three-way merge. Most of the time this resolves cleanly and commits.
5. If a merge genuinely conflicts (the same region changed both ways), update_article returns a conflict carrying the revision it stopped at and the title and body merge results as segments: each segment is either a clean run or a conflict holding your version, the common ancestor, and their version. Re-present those to the editor, get a resolved title/body back, and retry update_article with the later base_revision.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
