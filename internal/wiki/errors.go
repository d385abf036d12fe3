package wiki

import "errors"

var (
	// ErrEmptyTitle is a domain rejection: titles must be non-empty on both
	// create and update.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrFutureRevision is a domain rejection: the caller's base revision is
	// ahead of the article's actual head, which can only happen for a
	// malformed or stale client.
	ErrFutureRevision = errors.New("base revision is ahead of the article's current head")

	// ErrArticleNotFound is returned by operations that must distinguish a
	// missing article from a domain rejection (unlike GetRevision, which
	// encodes a miss as a plain false per spec.md's preserved behavior).
	ErrArticleNotFound = errors.New("article not found")
)
