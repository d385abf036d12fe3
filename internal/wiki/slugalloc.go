package wiki

import (
	"context"
	"fmt"

	"github.com/rpggio/wikicore/internal/slug"
)

// AllocateSlug implements the C4 slug allocator rules in order. inUse must
// check, within the same transaction as the caller's subsequent insert,
// whether candidate is already the slug of some other article's latest
// revision. Storage backends call this from inside their write transaction
// so invariant 4 (slug uniqueness among latest revisions) holds under
// concurrency.
func AllocateSlug(ctx context.Context, prevTitle, newTitle, prevSlug string, hasPrevSlug bool, inUse func(ctx context.Context, candidate string) (bool, error)) (string, error) {
	// Rule 1: the front page's empty slug is permanent.
	if hasPrevSlug && prevSlug == "" {
		return "", nil
	}

	// Rule 2: an unchanged title keeps its slug.
	if newTitle == prevTitle {
		return prevSlug, nil
	}

	base := slug.Slugify(newTitle)

	// Rule 3: a freshly computed slug equal to the previous one is reused
	// unchanged (no disambiguation needed, it's already this article's slug).
	if hasPrevSlug && base == prevSlug {
		return base, nil
	}

	// Rule 4: an empty slugification falls back to a fixed name.
	if base == "" {
		base = "article"
	}

	// Rule 5: disambiguate against every other article's current slug.
	candidate := base
	for n := 2; ; n++ {
		used, err := inUse(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking slug availability: %w", err)
		}
		if !used {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
