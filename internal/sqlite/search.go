package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpggio/wikicore/internal/wiki"
)

// SearchRepository implements wiki.SearchRepository for SQLite's FTS5 index.
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository.
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// buildMatchQuery implements spec.md §4.6's tokenization: whitespace-split
// tokens, each quoted with internal quotes doubled; a lone token gets a
// trailing '*' for prefix match; multiple tokens are joined with FTS5's NEAR
// operator so they must appear close together in the matched document.
func buildMatchQuery(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return `""`
	}

	tokens := make([]string, len(fields))
	for i, f := range fields {
		tokens[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	if len(tokens) == 1 {
		return tokens[0] + "*"
	}
	return "NEAR(" + strings.Join(tokens, " ") + ")"
}

// Search runs a full-text search against the article_search index.
func (r *SearchRepository) Search(ctx context.Context, query string, opts wiki.SearchOptions) ([]wiki.SearchResult, error) {
	matchQuery := buildMatchQuery(query)

	sqlQuery := `
		SELECT
			title,
			slug,
			snippet(article_search, 1, '<em>', '</em>', '…', ?) AS snippet
		FROM article_search
		WHERE article_search MATCH ?
		ORDER BY rank
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, sqlQuery, opts.SnippetSize, matchQuery, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("searching articles: %w", err)
	}
	defer rows.Close()

	var results []wiki.SearchResult
	for rows.Next() {
		var res wiki.SearchResult
		if err := rows.Scan(&res.Title, &res.Slug, &res.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}
	return results, nil
}
