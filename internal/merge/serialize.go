package merge

import "strings"

const (
	lineConflictStart = "<<<<<<< Your changes:"
	lineConflictMid   = "======= Their changes:"
	lineConflictEnd   = ">>>>>>> Conflict ends here"
)

// SerializeLines renders a line-granularity merge result back into editable
// text: clean segments pass through verbatim, conflicts are wrapped in the
// literal marker block from spec.md §4.2 so a client can hand the text back
// for manual resolution.
func SerializeLines(r MergeResult[string]) string {
	var lines []string
	for _, seg := range r.Segments {
		if !seg.Conflict {
			lines = append(lines, seg.Resolved...)
			continue
		}
		lines = append(lines, lineConflictStart)
		lines = append(lines, seg.Our...)
		lines = append(lines, lineConflictMid)
		lines = append(lines, seg.Their...)
		lines = append(lines, lineConflictEnd)
	}
	return strings.Join(lines, "\n")
}

// SerializeChars renders a character-granularity merge result, wrapping each
// conflicting run as "<our|their>".
func SerializeChars(r MergeResult[rune]) string {
	var b strings.Builder
	for _, seg := range r.Segments {
		if !seg.Conflict {
			b.WriteString(string(seg.Resolved))
			continue
		}
		b.WriteByte('<')
		b.WriteString(string(seg.Our))
		b.WriteByte('|')
		b.WriteString(string(seg.Their))
		b.WriteByte('>')
	}
	return b.String()
}
