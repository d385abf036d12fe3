// Package slug derives URL-safe ASCII slugs from article titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	multiHyphen     = regexp.MustCompile(`-{2,}`)
)

// Slugify converts an arbitrary title into a lowercase ASCII slug: accents
// are stripped via NFD normalization, everything but letters and digits
// becomes a hyphen, and runs of hyphens collapse to one.
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMark))
	result, _, _ := transform.String(t, title)

	result = strings.ToLower(result)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
