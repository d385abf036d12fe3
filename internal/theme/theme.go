// Package theme implements the closed 19-entry visual palette a wiki article
// carries, and the deterministic hash-based assignment new articles receive.
package theme

import "github.com/cespare/xxhash/v2"

// Theme is one of a closed palette of visual accents. The zero value is Red.
type Theme int

const (
	Red Theme = iota
	Pink
	Purple
	DeepPurple
	Indigo
	Blue
	LightBlue
	Cyan
	Teal
	Green
	LightGreen
	Lime
	Yellow
	Amber
	Orange
	DeepOrange
	Brown
	Gray
	BlueGray
)

// All lists the palette in stable, display order.
var All = [...]Theme{
	Red, Pink, Purple, DeepPurple, Indigo, Blue, LightBlue, Cyan, Teal, Green,
	LightGreen, Lime, Yellow, Amber, Orange, DeepOrange, Brown, Gray, BlueGray,
}

var names = [...]string{
	"red", "pink", "purple", "deep-purple", "indigo", "blue", "light-blue",
	"cyan", "teal", "green", "light-green", "lime", "yellow", "amber",
	"orange", "deep-orange", "brown", "gray", "blue-gray",
}

// String renders the kebab-case name used for persistence and CSS classes.
func (t Theme) String() string {
	if int(t) < 0 || int(t) >= len(names) {
		return "red"
	}
	return names[t]
}

// CSSClass is the "theme-<name>" class an HTML layer would attach.
func (t Theme) CSSClass() string {
	return "theme-" + t.String()
}

// Parse recovers a Theme from its persisted name, defaulting to Red for an
// unrecognized value rather than erroring: an unknown theme on read is a
// cosmetic detail, not a domain failure.
func Parse(name string) (Theme, bool) {
	for i, n := range names {
		if n == name {
			return Theme(i), true
		}
	}
	return Red, false
}

// FromHash deterministically selects a theme from an arbitrary string —
// typically an article's title — by hashing it and reducing modulo the size
// of the palette. This stands in for the source's seahash-based selection;
// xxhash gives the same properties (stable, fast, non-cryptographic) over a
// different bit pattern, so the mapping from string to theme differs from
// the original implementation's but is equally deterministic.
func FromHash(s string) Theme {
	h := xxhash.Sum64String(s)
	return All[h%uint64(len(All))]
}
