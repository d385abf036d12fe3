package async

import (
	"context"
	"log/slog"

	"github.com/rpggio/wikicore/internal/theme"
	"github.com/rpggio/wikicore/internal/wiki"
)

// Service wraps a wiki.Service so each call runs on the bounded pool and
// returns a Future, mirroring the per-method CpuFuture-returning facade the
// original implementation put in front of its synchronous database calls.
type Service struct {
	core *wiki.Service
	pool *Pool
}

// NewService wraps core with a pool of the given size. logger may be nil.
func NewService(core *wiki.Service, poolSize int, logger *slog.Logger) *Service {
	return &Service{core: core, pool: NewPool(poolSize, logger)}
}

func (s *Service) CreateArticle(ctx context.Context, targetSlug *string, title, body string, author *string, th *theme.Theme) *Future[wiki.ArticleRevision] {
	return Spawn(s.pool, func() (wiki.ArticleRevision, error) {
		return s.core.CreateArticle(ctx, targetSlug, title, body, author, th)
	})
}

func (s *Service) UpdateArticle(ctx context.Context, articleID, baseRevision int64, title, body string, author *string, callerTheme *theme.Theme) *Future[wiki.UpdateOutcome] {
	return Spawn(s.pool, func() (wiki.UpdateOutcome, error) {
		return s.core.UpdateArticle(ctx, articleID, baseRevision, title, body, author, callerTheme)
	})
}

// RevisionLookup is a revision paired with whether it was found at all,
// since a Future has no room for a second return value.
type RevisionLookup struct {
	Revision wiki.ArticleRevision
	Found    bool
}

func (s *Service) GetRevision(ctx context.Context, articleID, revision int64) *Future[RevisionLookup] {
	return Spawn(s.pool, func() (RevisionLookup, error) {
		rev, ok, err := s.core.GetRevision(ctx, articleID, revision)
		return RevisionLookup{Revision: rev, Found: ok}, err
	})
}

func (s *Service) GetHeadRevision(ctx context.Context, articleID int64) *Future[RevisionLookup] {
	return Spawn(s.pool, func() (RevisionLookup, error) {
		rev, ok, err := s.core.GetHeadRevision(ctx, articleID)
		return RevisionLookup{Revision: rev, Found: ok}, err
	})
}

func (s *Service) LookupSlug(ctx context.Context, slug string) *Future[wiki.SlugLookup] {
	return Spawn(s.pool, func() (wiki.SlugLookup, error) {
		return s.core.LookupSlug(ctx, slug)
	})
}

func (s *Service) QueryRevisions(ctx context.Context, filter wiki.QueryFilter) *Future[[]wiki.ArticleRevisionStub] {
	return Spawn(s.pool, func() ([]wiki.ArticleRevisionStub, error) {
		return s.core.QueryRevisions(ctx, filter)
	})
}

func (s *Service) Search(ctx context.Context, query string, opts wiki.SearchOptions) *Future[[]wiki.SearchResult] {
	return Spawn(s.pool, func() ([]wiki.SearchResult, error) {
		return s.core.Search(ctx, query, opts)
	})
}
