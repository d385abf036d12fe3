package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/wikicore/internal/theme"
	"github.com/rpggio/wikicore/internal/wiki"
)

// Service is the subset of the wiki core a tool surface needs. Satisfied by
// *wiki.Service directly, or by a thin adapter over internal/async's
// future-returning facade.
type Service interface {
	CreateArticle(ctx context.Context, targetSlug *string, title, body string, author *string, th *theme.Theme) (wiki.ArticleRevision, error)
	UpdateArticle(ctx context.Context, articleID, baseRevision int64, title, body string, author *string, callerTheme *theme.Theme) (wiki.UpdateOutcome, error)
	GetRevision(ctx context.Context, articleID, revision int64) (wiki.ArticleRevision, bool, error)
	GetHeadRevision(ctx context.Context, articleID int64) (wiki.ArticleRevision, bool, error)
	LookupSlug(ctx context.Context, slug string) (wiki.SlugLookup, error)
	QueryRevisions(ctx context.Context, filter wiki.QueryFilter) ([]wiki.ArticleRevisionStub, error)
	Search(ctx context.Context, query string, opts wiki.SearchOptions) ([]wiki.SearchResult, error)
}

type createArticleArgs struct {
	Slug   *string `json:"slug,omitempty" jsonschema:"target slug; omit to derive one from the title, or pass an empty string for the front page"`
	Title  string  `json:"title" jsonschema:"article title"`
	Body   string  `json:"body" jsonschema:"article body, in Markdown"`
	Author *string `json:"author,omitempty" jsonschema:"free-text author attribution"`
}

type updateArticleArgs struct {
	ArticleID    int64   `json:"article_id" jsonschema:"id of the article being edited"`
	BaseRevision int64   `json:"base_revision" jsonschema:"the revision number this edit was made against"`
	Title        string  `json:"title" jsonschema:"new title"`
	Body         string  `json:"body" jsonschema:"new body, in Markdown"`
	Author       *string `json:"author,omitempty"`
}

type getRevisionArgs struct {
	ArticleID int64 `json:"article_id"`
	Revision  int64 `json:"revision" jsonschema:"omit or pass 0 for the current head revision"`
}

type lookupSlugArgs struct {
	Slug string `json:"slug"`
}

type queryRevisionsArgs struct {
	ArticleID  *int64 `json:"article_id,omitempty"`
	LatestOnly bool   `json:"latest_only,omitempty"`
	After      *int64 `json:"after,omitempty" jsonschema:"sequence_number cursor; return revisions after it"`
	Limit      int    `json:"limit,omitempty"`
}

type searchArgs struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

func registerTools(server *sdkmcp.Server, svc Service) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_article",
		Description: "Create a new wiki article with its first revision",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args createArticleArgs) (*sdkmcp.CallToolResult, wiki.ArticleRevision, error) {
		rev, err := svc.CreateArticle(ctx, args.Slug, args.Title, args.Body, args.Author, nil)
		if err != nil {
			return nil, wiki.ArticleRevision{}, mapError(err)
		}
		return nil, rev, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_article",
		Description: "Submit an edit against a base revision; rebases onto the current head and commits, or returns a conflict for manual resolution",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args updateArticleArgs) (*sdkmcp.CallToolResult, wiki.UpdateOutcome, error) {
		outcome, err := svc.UpdateArticle(ctx, args.ArticleID, args.BaseRevision, args.Title, args.Body, args.Author, nil)
		if err != nil {
			return nil, wiki.UpdateOutcome{}, mapError(err)
		}
		return nil, outcome, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_revision",
		Description: "Read one article revision, or its current head if revision is omitted",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args getRevisionArgs) (*sdkmcp.CallToolResult, wiki.ArticleRevision, error) {
		var rev wiki.ArticleRevision
		var ok bool
		var err error
		if args.Revision == 0 {
			rev, ok, err = svc.GetHeadRevision(ctx, args.ArticleID)
		} else {
			rev, ok, err = svc.GetRevision(ctx, args.ArticleID, args.Revision)
		}
		if err != nil {
			return nil, wiki.ArticleRevision{}, mapError(err)
		}
		if !ok {
			return nil, wiki.ArticleRevision{}, mapError(fmt.Errorf("%w: article %d revision %d", wiki.ErrArticleNotFound, args.ArticleID, args.Revision))
		}
		return nil, rev, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "lookup_slug",
		Description: "Resolve a slug to an article: a hit, a redirect to the article's current slug, or a miss",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args lookupSlugArgs) (*sdkmcp.CallToolResult, wiki.SlugLookup, error) {
		lookup, err := svc.LookupSlug(ctx, args.Slug)
		if err != nil {
			return nil, wiki.SlugLookup{}, mapError(err)
		}
		return nil, lookup, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "query_revisions",
		Description: "List revision history, keyset-paginated by sequence_number",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args queryRevisionsArgs) (*sdkmcp.CallToolResult, []wiki.ArticleRevisionStub, error) {
		stubs, err := svc.QueryRevisions(ctx, wiki.QueryFilter{
			ArticleID:  args.ArticleID,
			LatestOnly: args.LatestOnly,
			After:      args.After,
			Limit:      args.Limit,
		})
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, stubs, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search",
		Description: "Full-text search over the latest revision of every article",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args searchArgs) (*sdkmcp.CallToolResult, []wiki.SearchResult, error) {
		results, err := svc.Search(ctx, args.Query, wiki.SearchOptions{Limit: args.Limit, Offset: args.Offset})
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, results, nil
	})
}
