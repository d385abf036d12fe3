// Package wiki implements the article-revision store: three-way textual
// merge on concurrent edits, slug lifecycle, and the read paths consuming
// committed history.
package wiki

import (
	"time"

	"github.com/rpggio/wikicore/internal/merge"
	"github.com/rpggio/wikicore/internal/theme"
)

// ArticleRevision is an immutable snapshot of an article at one point in its
// history.
type ArticleRevision struct {
	SequenceNumber int64
	ArticleID      int64
	Revision       int64
	Created        time.Time
	Slug           string
	Title          string
	Body           string
	Author         *string
	Latest         bool
	Theme          theme.Theme
}

// Link is the URL-visible form of the revision's slug: the empty slug
// (reserved for the front page) renders as "." rather than "".
func (r ArticleRevision) Link() string {
	return slugLink(r.Slug)
}

// ArticleRevisionStub is the lightweight projection of a revision without its
// body, used by listings that would otherwise pay for loading full bodies
// they never display.
type ArticleRevisionStub struct {
	SequenceNumber int64
	ArticleID      int64
	Revision       int64
	Created        time.Time
	Slug           string
	Title          string
	Latest         bool
	Author         *string
	Theme          theme.Theme
}

// Link is the URL-visible form of the stub's slug.
func (s ArticleRevisionStub) Link() string {
	return slugLink(s.Slug)
}

func slugLink(slug string) string {
	if slug == "" {
		return "."
	}
	return slug
}

// SearchResult is a single full-text search hit.
type SearchResult struct {
	Title   string
	Slug    string
	Snippet string
}

// Link is the URL-visible form of the search hit's slug.
func (r SearchResult) Link() string {
	return slugLink(r.Slug)
}

// SlugLookupKind discriminates the outcome of resolving a slug.
type SlugLookupKind int

const (
	// SlugMiss means the slug has never been used by any article.
	SlugMiss SlugLookupKind = iota
	// SlugHit means the slug is the current slug of an article's latest revision.
	SlugHit
	// SlugRedirect means the slug was used in the past but has since been
	// superseded; the article's current slug is carried alongside.
	SlugRedirect
)

// SlugLookup is the tagged result of resolving a slug to an article.
type SlugLookup struct {
	Kind        SlugLookupKind
	ArticleID   int64  // set for Hit and Redirect
	Revision    int64  // set for Hit
	CurrentSlug string // set for Redirect
}

// RebaseConflict carries everything a client needs to re-present a conflicted
// edit for manual resolution: the revision the rebase stopped at, and the
// title/body merge results (each either clean or carrying conflict segments).
type RebaseConflict struct {
	BaseRevision ArticleRevisionStub
	TitleMerge   merge.MergeResult[rune]
	BodyMerge    merge.MergeResult[string]
	Theme        theme.Theme
}

// UpdateOutcome is the tagged union returned by UpdateArticle: either the
// edit committed as a new revision, or the rebase hit a real conflict and
// nothing was written.
type UpdateOutcome struct {
	Revision *ArticleRevision // set when the update committed
	Conflict *RebaseConflict  // set when the rebase could not resolve cleanly
}
