package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/wikicore/internal/theme"
	"github.com/rpggio/wikicore/internal/wiki"
	"github.com/stretchr/testify/require"
)

func TestArticleRepository_CreateArticle(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewArticleRepository(db)

	rev, err := repo.CreateArticle(ctx, nil, "Hello World", "body text", nil, theme.Green)
	require.NoError(t, err)
	require.Equal(t, int64(1), rev.Revision)
	require.True(t, rev.Latest)
	require.Equal(t, "hello-world", rev.Slug)

	got, ok, err := repo.GetHeadRevision(ctx, rev.ArticleID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rev.Slug, got.Slug)
	require.Equal(t, "Hello World", got.Title)
}

func TestArticleRepository_CreateArticleSlugDisambiguation(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewArticleRepository(db)

	_, err := repo.CreateArticle(ctx, nil, "Duplicate", "first", nil, theme.Red)
	require.NoError(t, err)

	rev2, err := repo.CreateArticle(ctx, nil, "Duplicate", "second", nil, theme.Red)
	require.NoError(t, err)
	require.Equal(t, "duplicate-2", rev2.Slug)
}

func TestArticleRepository_CreateFrontPage(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewArticleRepository(db)

	empty := ""
	rev, err := repo.CreateArticle(ctx, &empty, "Front Page", "welcome", nil, theme.Blue)
	require.NoError(t, err)
	require.Equal(t, "", rev.Slug)
	require.Equal(t, ".", rev.Link())
}

func TestArticleRepository_UpdateArticle(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewArticleRepository(db)

	rev, err := repo.CreateArticle(ctx, nil, "Original Title", "body v1", nil, theme.Amber)
	require.NoError(t, err)

	outcome, err := repo.UpdateArticle(ctx, rev.ArticleID, rev.Revision, "Renamed Title", "body v2", nil, nil)
	require.NoError(t, err)
	require.Nil(t, outcome.Conflict)
	require.NotNil(t, outcome.Revision)
	require.Equal(t, int64(2), outcome.Revision.Revision)
	require.Equal(t, "renamed-title", outcome.Revision.Slug)

	old, ok, err := repo.GetRevision(ctx, rev.ArticleID, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, old.Latest)
	require.Equal(t, "body v1", old.Body)
}

func TestArticleRepository_LookupSlug(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewArticleRepository(db)

	rev, err := repo.CreateArticle(ctx, nil, "Moved Page", "body", nil, theme.Teal)
	require.NoError(t, err)

	lookup, err := repo.LookupSlug(ctx, "moved-page")
	require.NoError(t, err)
	require.Equal(t, wiki.SlugHit, lookup.Kind)
	require.Equal(t, rev.ArticleID, lookup.ArticleID)

	_, err = repo.UpdateArticle(ctx, rev.ArticleID, rev.Revision, "Renamed Page", "body", nil, nil)
	require.NoError(t, err)

	lookup, err = repo.LookupSlug(ctx, "moved-page")
	require.NoError(t, err)
	require.Equal(t, wiki.SlugRedirect, lookup.Kind)
	require.Equal(t, "renamed-page", lookup.CurrentSlug)

	lookup, err = repo.LookupSlug(ctx, "never-existed")
	require.NoError(t, err)
	require.Equal(t, wiki.SlugMiss, lookup.Kind)
}

func TestArticleRepository_QueryRevisionsPagination(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewArticleRepository(db)

	for i := 0; i < 5; i++ {
		_, err := repo.CreateArticle(ctx, nil, "Page", "body", nil, theme.Indigo)
		require.NoError(t, err)
	}

	page, err := repo.QueryRevisions(ctx, wiki.QueryFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 3) // limit+1 so callers can detect a further page
	require.Equal(t, int64(1), page[0].SequenceNumber)

	nextAfter := page[1].SequenceNumber
	page2, err := repo.QueryRevisions(ctx, wiki.QueryFilter{Limit: 2, After: &nextAfter})
	require.NoError(t, err)
	require.True(t, len(page2) > 0)
	require.Greater(t, page2[0].SequenceNumber, nextAfter)
}
