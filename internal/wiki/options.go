package wiki

// Order selects the sort key for QueryRevisions.
type Order int

const (
	// OrderBySequence sorts by sequence_number, the store's native insertion order.
	OrderBySequence Order = iota
	// OrderByTitle sorts lexicographically by title.
	OrderByTitle
)

// QueryFilter describes a read of the revision history used by changes
// listings and sitemaps. Pagination is keyset-based: callers pass either
// After or Before (never both); the repository returns Limit+1 rows so the
// caller can detect whether a further page exists.
type QueryFilter struct {
	ArticleID  *int64
	Author     *string
	LatestOnly bool

	After  *int64
	Before *int64

	Order Order
	Limit int
}

// SearchOptions tunes a full-text search call.
type SearchOptions struct {
	Limit       int
	Offset      int
	SnippetSize int
}

// Defaults mirrored from the original implementation's search resource.
const (
	DefaultSearchLimit = 10
	DefaultSnippetSize = 8
)
