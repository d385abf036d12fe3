package wiki

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/wikicore/internal/theme"
)

// Service is the synchronous core of the revision store (spec.md §4.7's
// "synchronous core that takes a borrowed database handle"). It owes no
// concurrency or transport semantics of its own; internal/async wraps it
// with a worker-pool facade for callers that want futures.
type Service struct {
	articles ArticleRepository
	search   SearchRepository
	logger   *slog.Logger
}

// NewService builds a Service over the given repositories.
func NewService(articles ArticleRepository, search SearchRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{articles: articles, search: search, logger: logger}
}

// CreateArticle creates a brand-new article with its first revision.
func (s *Service) CreateArticle(ctx context.Context, targetSlug *string, title, body string, author *string, th *theme.Theme) (ArticleRevision, error) {
	if err := ValidateTitle(title); err != nil {
		return ArticleRevision{}, err
	}

	chosenTheme := theme.FromHash(title)
	if th != nil {
		chosenTheme = *th
	}

	rev, err := s.articles.CreateArticle(ctx, targetSlug, title, body, author, chosenTheme)
	if err != nil {
		return ArticleRevision{}, fmt.Errorf("creating article: %w", err)
	}

	s.logger.Info("article created", "article_id", rev.ArticleID, "slug", rev.Slug)
	return rev, nil
}

// UpdateArticle rebases the caller's edit, made against baseRevision, onto
// the article's current head (spec.md §4.5). It either commits a new
// revision or returns a RebaseConflict without writing anything. The whole
// read-merge-write sequence is delegated to the repository so it can run
// inside a single transaction on a single connection (spec.md §4.5, §5) —
// this service has no handle on the database to hold that transaction open
// across its own round trips.
func (s *Service) UpdateArticle(ctx context.Context, articleID, baseRevision int64, title, body string, author *string, callerTheme *theme.Theme) (UpdateOutcome, error) {
	if err := ValidateTitle(title); err != nil {
		return UpdateOutcome{}, err
	}

	outcome, err := s.articles.UpdateArticle(ctx, articleID, baseRevision, title, body, author, callerTheme)
	if err != nil {
		return UpdateOutcome{}, fmt.Errorf("updating article: %w", err)
	}

	if outcome.Revision != nil {
		s.logger.Info("article updated", "article_id", articleID, "revision", outcome.Revision.Revision)
	}
	return outcome, nil
}

// GetRevision reads one immutable revision.
func (s *Service) GetRevision(ctx context.Context, articleID, revision int64) (ArticleRevision, bool, error) {
	return s.articles.GetRevision(ctx, articleID, revision)
}

// GetHeadRevision reads an article's current latest revision.
func (s *Service) GetHeadRevision(ctx context.Context, articleID int64) (ArticleRevision, bool, error) {
	return s.articles.GetHeadRevision(ctx, articleID)
}

// GetSlug returns the slug of an article's latest revision.
func (s *Service) GetSlug(ctx context.Context, articleID int64) (string, bool, error) {
	return s.articles.GetSlug(ctx, articleID)
}

// LookupSlug classifies a slug as Miss, Hit, or Redirect.
func (s *Service) LookupSlug(ctx context.Context, slug string) (SlugLookup, error) {
	return s.articles.LookupSlug(ctx, slug)
}

// QueryRevisions runs a filtered, paginated read over revision history.
func (s *Service) QueryRevisions(ctx context.Context, filter QueryFilter) ([]ArticleRevisionStub, error) {
	return s.articles.QueryRevisions(ctx, filter)
}

// Search runs full-text search, applying the package defaults for any zero
// option the caller left unset.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	if s.search == nil {
		return nil, errors.New("search repository not configured")
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}
	if opts.SnippetSize <= 0 {
		opts.SnippetSize = DefaultSnippetSize
	}
	return s.search.Search(ctx, query, opts)
}
