package wiki

import (
	"context"

	"github.com/rpggio/wikicore/internal/theme"
)

// ArticleRepository is the storage contract the revision store depends on
// (C3/C5): transactional read/insert of revisions, slug lookup, and the
// rebase loop itself.
type ArticleRepository interface {
	// GetRevision reads one immutable revision. A missing article or a
	// revision out of range are both reported as (_, false), matching
	// spec.md's preserved "uniform None" behavior (§9 open question 1).
	GetRevision(ctx context.Context, articleID, revision int64) (ArticleRevision, bool, error)

	// GetHeadRevision reads the current latest revision of an article.
	GetHeadRevision(ctx context.Context, articleID int64) (ArticleRevision, bool, error)

	// GetSlug returns the slug of an article's latest revision.
	GetSlug(ctx context.Context, articleID int64) (string, bool, error)

	// LookupSlug classifies a slug as Miss, Hit, or Redirect.
	LookupSlug(ctx context.Context, slug string) (SlugLookup, error)

	// QueryRevisions supports the filtered, paginated listings used by
	// changes feeds and sitemaps.
	QueryRevisions(ctx context.Context, filter QueryFilter) ([]ArticleRevisionStub, error)

	// CreateArticle inserts a new articles row and its first revision in one
	// transaction.
	CreateArticle(ctx context.Context, targetSlug *string, title, body string, author *string, th theme.Theme) (ArticleRevision, error)

	// UpdateArticle runs the full rebase loop (spec.md §4.5): it merges the
	// caller's edit, made against baseRevision, forward through every
	// revision committed since, allocates a slug for the result, and
	// commits it as a new revision — or returns a conflict without writing
	// anything. The read-merge-write sequence runs in one transaction on
	// one connection, so a concurrent commit landing between the rebase's
	// reads and its write can't be missed or silently overwritten.
	UpdateArticle(ctx context.Context, articleID, baseRevision int64, title, body string, author *string, callerTheme *theme.Theme) (UpdateOutcome, error)
}

// SearchRepository is the storage contract for full-text search (C6).
type SearchRepository interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}
