package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully.
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{"articles", "article_revisions", "article_search"}
	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled.
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestArticleForeignKey verifies a revision cannot reference a missing article.
func TestArticleForeignKey(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		INSERT INTO article_revisions
			(article_id, revision, slug, title, body, body_fts, latest, theme)
		VALUES (999, 1, 'x', 'X', 'body', 'body', 1, 'red')
	`)
	require.Error(t, err)
	require.True(t, isForeignKeyViolation(err))
}

// TestSlugUniqueAmongLatest verifies the partial unique index rejects a
// second latest revision reusing an in-use slug.
func TestSlugUniqueAmongLatest(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	res, err := db.ExecContext(ctx, `INSERT INTO articles DEFAULT VALUES`)
	require.NoError(t, err)
	a1, _ := res.LastInsertId()

	res, err = db.ExecContext(ctx, `INSERT INTO articles DEFAULT VALUES`)
	require.NoError(t, err)
	a2, _ := res.LastInsertId()

	_, err = db.ExecContext(ctx, `
		INSERT INTO article_revisions (article_id, revision, slug, title, body, body_fts, latest, theme)
		VALUES (?, 1, 'foo', 'Foo', 'body', 'body', 1, 'red')
	`, a1)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `
		INSERT INTO article_revisions (article_id, revision, slug, title, body, body_fts, latest, theme)
		VALUES (?, 1, 'foo', 'Foo Too', 'body', 'body', 1, 'red')
	`, a2)
	require.Error(t, err)
	require.True(t, isUniqueViolation(err))
}

// TestFTSIndex verifies the full-text search index is synchronized by the
// insert/update triggers, tracking only the latest revision of an article.
func TestFTSIndex(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	res, err := db.ExecContext(ctx, `INSERT INTO articles DEFAULT VALUES`)
	require.NoError(t, err)
	articleID, _ := res.LastInsertId()

	_, err = db.ExecContext(ctx, `
		INSERT INTO article_revisions (article_id, revision, slug, title, body, body_fts, latest, theme)
		VALUES (?, 1, 'unique-page', 'Unique Page', 'body', 'Unique Page body', 1, 'red')
	`, articleID)
	require.NoError(t, err)

	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM article_search WHERE article_search MATCH ?`, "unique").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "should find 1 article matching 'unique'")

	_, err = db.ExecContext(ctx, `UPDATE article_revisions SET latest = 0 WHERE article_id = ?`, articleID)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `
		INSERT INTO article_revisions (article_id, revision, slug, title, body, body_fts, latest, theme)
		VALUES (?, 2, 'updated-page', 'Updated Page', 'body', 'Updated Page body', 1, 'red')
	`, articleID)
	require.NoError(t, err)

	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM article_search WHERE article_search MATCH ?`, "updated").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "should find 1 article matching 'updated' after the rename")

	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM article_search WHERE article_search MATCH ?`, "unique").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count, "old title should no longer be indexed")
}
