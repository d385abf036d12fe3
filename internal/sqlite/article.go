package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/wikicore/internal/markdown"
	"github.com/rpggio/wikicore/internal/merge"
	"github.com/rpggio/wikicore/internal/repository"
	"github.com/rpggio/wikicore/internal/theme"
	"github.com/rpggio/wikicore/internal/wiki"
)

// ArticleRepository implements wiki.ArticleRepository for SQLite.
type ArticleRepository struct {
	db *DB
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// queryer is the subset of *sql.Tx and *sql.Conn shared by the helpers in
// this file, so the same insert/lookup code runs whether the caller is
// inside a BeginTx transaction or holds a pinned *sql.Conn with a manual
// BEGIN IMMEDIATE in flight.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const revisionColumns = `sequence_number, article_id, revision, created, slug, title, body, author, latest, theme`

func scanRevision(row *sql.Row) (wiki.ArticleRevision, bool, error) {
	var rev wiki.ArticleRevision
	var themeName string
	var author sql.NullString
	err := row.Scan(
		&rev.SequenceNumber, &rev.ArticleID, &rev.Revision, &rev.Created,
		&rev.Slug, &rev.Title, &rev.Body, &author, &rev.Latest, &themeName,
	)
	if err == sql.ErrNoRows {
		return wiki.ArticleRevision{}, false, nil
	}
	if err != nil {
		return wiki.ArticleRevision{}, false, fmt.Errorf("scanning revision: %w", err)
	}
	if author.Valid {
		rev.Author = &author.String
	}
	rev.Theme, _ = theme.Parse(themeName)
	return rev, true, nil
}

// GetRevision reads one immutable revision, by article and revision number.
func (r *ArticleRepository) GetRevision(ctx context.Context, articleID, revision int64) (wiki.ArticleRevision, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+revisionColumns+`
		FROM article_revisions
		WHERE article_id = ? AND revision = ?
	`, articleID, revision)
	return scanRevision(row)
}

// GetHeadRevision reads an article's current latest revision.
func (r *ArticleRepository) GetHeadRevision(ctx context.Context, articleID int64) (wiki.ArticleRevision, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+revisionColumns+`
		FROM article_revisions
		WHERE article_id = ? AND latest
	`, articleID)
	return scanRevision(row)
}

// GetSlug returns the slug of an article's latest revision.
func (r *ArticleRepository) GetSlug(ctx context.Context, articleID int64) (string, bool, error) {
	var slug string
	err := r.db.QueryRowContext(ctx, `
		SELECT slug FROM article_revisions WHERE article_id = ? AND latest
	`, articleID).Scan(&slug)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting slug: %w", err)
	}
	return slug, true, nil
}

// LookupSlug classifies a slug as Miss, Hit, or Redirect, per spec.md §4.5:
// of every revision matching the slug, take the one with the largest
// sequence_number; if it's the current latest, it's a Hit; otherwise
// redirect to the article's current slug.
func (r *ArticleRepository) LookupSlug(ctx context.Context, slug string) (wiki.SlugLookup, error) {
	var articleID, revision int64
	var latest bool
	err := r.db.QueryRowContext(ctx, `
		SELECT article_id, revision, latest
		FROM article_revisions
		WHERE slug = ?
		ORDER BY sequence_number DESC
		LIMIT 1
	`, slug).Scan(&articleID, &revision, &latest)
	if err == sql.ErrNoRows {
		return wiki.SlugLookup{Kind: wiki.SlugMiss}, nil
	}
	if err != nil {
		return wiki.SlugLookup{}, fmt.Errorf("looking up slug: %w", err)
	}
	if latest {
		return wiki.SlugLookup{Kind: wiki.SlugHit, ArticleID: articleID, Revision: revision}, nil
	}

	currentSlug, ok, err := r.GetSlug(ctx, articleID)
	if err != nil {
		return wiki.SlugLookup{}, err
	}
	if !ok {
		return wiki.SlugLookup{}, fmt.Errorf("%w: article %d has no latest revision", repository.ErrConflict, articleID)
	}
	return wiki.SlugLookup{Kind: wiki.SlugRedirect, ArticleID: articleID, CurrentSlug: currentSlug}, nil
}

// QueryRevisions supports the filtered, keyset-paginated listings used by
// changes feeds and sitemaps. It returns filter.Limit+1 rows (when Limit>0)
// so the caller can detect a further page.
func (r *ArticleRepository) QueryRevisions(ctx context.Context, filter wiki.QueryFilter) ([]wiki.ArticleRevisionStub, error) {
	query := `
		SELECT sequence_number, article_id, revision, created, slug, title, author, latest, theme
		FROM article_revisions
		WHERE 1 = 1
	`
	var args []any

	if filter.ArticleID != nil {
		query += " AND article_id = ?"
		args = append(args, *filter.ArticleID)
	}
	if filter.Author != nil {
		query += " AND author = ?"
		args = append(args, *filter.Author)
	}
	if filter.LatestOnly {
		query += " AND latest"
	}
	if filter.After != nil {
		query += " AND sequence_number > ?"
		args = append(args, *filter.After)
	}
	if filter.Before != nil {
		query += " AND sequence_number < ?"
		args = append(args, *filter.Before)
	}

	switch filter.Order {
	case wiki.OrderByTitle:
		query += " ORDER BY title ASC"
	default:
		query += " ORDER BY sequence_number ASC"
	}

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit+1)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying revisions: %w", err)
	}
	defer rows.Close()

	var stubs []wiki.ArticleRevisionStub
	for rows.Next() {
		var stub wiki.ArticleRevisionStub
		var themeName string
		var author sql.NullString
		if err := rows.Scan(
			&stub.SequenceNumber, &stub.ArticleID, &stub.Revision, &stub.Created,
			&stub.Slug, &stub.Title, &author, &stub.Latest, &themeName,
		); err != nil {
			return nil, fmt.Errorf("scanning revision stub: %w", err)
		}
		if author.Valid {
			stub.Author = &author.String
		}
		stub.Theme, _ = theme.Parse(themeName)
		stubs = append(stubs, stub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revisions: %w", err)
	}
	return stubs, nil
}

// beginImmediate pins a single physical connection and opens a write
// transaction on it with BEGIN IMMEDIATE, acquiring SQLite's write lock up
// front instead of at first write. That closes the gap a plain BeginTx
// leaves open: two callers could otherwise both pass the read phase of a
// read-merge-write sequence before either takes the write lock, and the
// second to commit would overwrite the first's work. Callers doing
// read-then-write across multiple statements (CreateArticle, UpdateArticle)
// use this instead of db.BeginTx.
func (r *ArticleRepository) beginImmediate(ctx context.Context) (*sql.Conn, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("beginning immediate transaction: %w", err)
	}
	return conn, nil
}

// CreateArticle inserts a new articles row and its first revision, running
// the slug allocator inside the same transaction as the insert.
func (r *ArticleRepository) CreateArticle(ctx context.Context, targetSlug *string, title, body string, author *string, th theme.Theme) (wiki.ArticleRevision, error) {
	conn, err := r.beginImmediate(ctx)
	if err != nil {
		return wiki.ArticleRevision{}, err
	}
	defer conn.Close()
	committed := false
	defer func() {
		if !committed {
			conn.ExecContext(ctx, "ROLLBACK")
		}
	}()

	res, err := conn.ExecContext(ctx, `INSERT INTO articles DEFAULT VALUES`)
	if err != nil {
		return wiki.ArticleRevision{}, fmt.Errorf("inserting article: %w", err)
	}
	articleID, err := res.LastInsertId()
	if err != nil {
		return wiki.ArticleRevision{}, fmt.Errorf("reading new article id: %w", err)
	}

	prevSlug := ""
	hasPrevSlug := targetSlug != nil
	if hasPrevSlug {
		prevSlug = *targetSlug
	}

	inUse := func(ctx context.Context, candidate string) (bool, error) {
		return slugInUse(ctx, conn, candidate, articleID)
	}
	slug, err := wiki.AllocateSlug(ctx, "", title, prevSlug, hasPrevSlug, inUse)
	if err != nil {
		return wiki.ArticleRevision{}, err
	}

	rev, err := insertRevision(ctx, conn, articleID, 1, slug, title, body, author, th)
	if err != nil {
		if isUniqueViolation(err) {
			return wiki.ArticleRevision{}, fmt.Errorf("%w: slug %q already in use", repository.ErrConflict, slug)
		}
		return wiki.ArticleRevision{}, err
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return wiki.ArticleRevision{}, fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return rev, nil
}

// UpdateArticle runs the full rebase loop and its commit in one BEGIN
// IMMEDIATE transaction on one connection (spec.md §4.5, §5): it reads the
// head and every intervening revision, merges the caller's edit forward
// through them, and either writes the result as a new revision or reports a
// conflict, all without releasing the write lock in between. That is what
// keeps a concurrent commit from landing between the rebase's reads and its
// write: under BeginTx-per-call, a second writer could read the same old
// head the first writer rebased against and silently clobber the first
// writer's revision, or collide on the article_id/revision unique
// constraint. Ported from the original's state.rs::update_article, which
// runs the equivalent sequence inside one Diesel transaction closure.
func (r *ArticleRepository) UpdateArticle(ctx context.Context, articleID, baseRevision int64, title, body string, author *string, callerTheme *theme.Theme) (wiki.UpdateOutcome, error) {
	conn, err := r.beginImmediate(ctx)
	if err != nil {
		return wiki.UpdateOutcome{}, err
	}
	defer conn.Close()
	committed := false
	defer func() {
		if !committed {
			conn.ExecContext(ctx, "ROLLBACK")
		}
	}()

	head, ok, err := getHeadRevision(ctx, conn, articleID)
	if err != nil {
		return wiki.UpdateOutcome{}, fmt.Errorf("loading head revision: %w", err)
	}
	if !ok {
		return wiki.UpdateOutcome{}, wiki.ErrArticleNotFound
	}
	if baseRevision > head.Revision {
		return wiki.UpdateOutcome{}, wiki.ErrFutureRevision
	}

	curTitle, curBody := title, body
	resultTheme := head.Theme
	if callerTheme != nil {
		resultTheme = *callerTheme
	}

	for rv := baseRevision; rv < head.Revision; rv++ {
		atR, ok, err := getRevisionAt(ctx, conn, articleID, rv)
		if err != nil {
			return wiki.UpdateOutcome{}, fmt.Errorf("loading revision %d: %w", rv, err)
		}
		if !ok {
			return wiki.UpdateOutcome{}, fmt.Errorf("%w: article %d revision %d", wiki.ErrArticleNotFound, articleID, rv)
		}
		atRPlus1, ok, err := getRevisionAt(ctx, conn, articleID, rv+1)
		if err != nil {
			return wiki.UpdateOutcome{}, fmt.Errorf("loading revision %d: %w", rv+1, err)
		}
		if !ok {
			return wiki.UpdateOutcome{}, fmt.Errorf("%w: article %d revision %d", wiki.ErrArticleNotFound, articleID, rv+1)
		}

		titleMerge := merge.MergeChars(atR.Title, curTitle, atRPlus1.Title)
		bodyMerge := merge.MergeLines(atR.Body, curBody, atRPlus1.Body)

		if callerTheme != nil && *callerTheme != atR.Theme {
			resultTheme = *callerTheme
		} else {
			resultTheme = atRPlus1.Theme
		}

		if titleMerge.IsConflicted() || bodyMerge.IsConflicted() {
			lastStub := wiki.ArticleRevisionStub{
				SequenceNumber: atRPlus1.SequenceNumber,
				ArticleID:      atRPlus1.ArticleID,
				Revision:       atRPlus1.Revision,
				Created:        atRPlus1.Created,
				Slug:           atRPlus1.Slug,
				Title:          atRPlus1.Title,
				Latest:         atRPlus1.Latest,
				Author:         atRPlus1.Author,
				Theme:          atRPlus1.Theme,
			}
			return wiki.UpdateOutcome{Conflict: &wiki.RebaseConflict{
				BaseRevision: lastStub,
				TitleMerge:   titleMerge,
				BodyMerge:    bodyMerge,
				Theme:        resultTheme,
			}}, nil
		}

		curTitle = merge.CharText(titleMerge)
		curBody = merge.LineText(bodyMerge)
	}

	inUse := func(ctx context.Context, candidate string) (bool, error) {
		return slugInUse(ctx, conn, candidate, articleID)
	}
	slug, err := wiki.AllocateSlug(ctx, head.Title, curTitle, head.Slug, true, inUse)
	if err != nil {
		return wiki.UpdateOutcome{}, err
	}

	if _, err := conn.ExecContext(ctx, `
		UPDATE article_revisions SET latest = 0 WHERE article_id = ? AND latest
	`, articleID); err != nil {
		return wiki.UpdateOutcome{}, fmt.Errorf("clearing previous latest flag: %w", err)
	}

	rev, err := insertRevision(ctx, conn, articleID, head.Revision+1, slug, curTitle, curBody, author, resultTheme)
	if err != nil {
		if isUniqueViolation(err) {
			return wiki.UpdateOutcome{}, fmt.Errorf("%w: slug %q already in use", repository.ErrConflict, slug)
		}
		return wiki.UpdateOutcome{}, err
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return wiki.UpdateOutcome{}, fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return wiki.UpdateOutcome{Revision: &rev}, nil
}

// getHeadRevision and getRevisionAt mirror GetHeadRevision/GetRevision but
// run against the queryer passed by the caller (the conn pinned by an
// in-flight BEGIN IMMEDIATE) instead of the pool, so the rebase loop sees
// a consistent snapshot under its own write lock rather than whatever the
// pool hands out next.
func getHeadRevision(ctx context.Context, q queryer, articleID int64) (wiki.ArticleRevision, bool, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+revisionColumns+`
		FROM article_revisions
		WHERE article_id = ? AND latest
	`, articleID)
	return scanRevision(row)
}

func getRevisionAt(ctx context.Context, q queryer, articleID, revision int64) (wiki.ArticleRevision, bool, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+revisionColumns+`
		FROM article_revisions
		WHERE article_id = ? AND revision = ?
	`, articleID, revision)
	return scanRevision(row)
}

func slugInUse(ctx context.Context, q queryer, candidate string, excludeArticleID int64) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM article_revisions
		WHERE slug = ? AND latest AND article_id != ?
	`, candidate, excludeArticleID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking slug availability: %w", err)
	}
	return count > 0, nil
}

func insertRevision(ctx context.Context, q queryer, articleID, revision int64, slug, title, body string, author *string, th theme.Theme) (wiki.ArticleRevision, error) {
	now := time.Now().UTC()
	bodyFTS := markdown.ToFTS(body)

	var authorArg any
	if author != nil {
		authorArg = *author
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO article_revisions
			(article_id, revision, created, slug, title, body, body_fts, author, latest, theme)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?)
	`, articleID, revision, now, slug, title, body, bodyFTS, authorArg, th.String())
	if err != nil {
		return wiki.ArticleRevision{}, fmt.Errorf("inserting revision: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return wiki.ArticleRevision{}, fmt.Errorf("reading new sequence number: %w", err)
	}

	return wiki.ArticleRevision{
		SequenceNumber: seq,
		ArticleID:      articleID,
		Revision:       revision,
		Created:        now,
		Slug:           slug,
		Title:          title,
		Body:           body,
		Author:         author,
		Latest:         true,
		Theme:          th,
	}, nil
}
