// Package slugs derives identifiers from note text.
//
// Two strategies are used:
//   - Note IDs: derived from a note's title when it has no explicit id field,
//     built on gosimple/slug so transliteration is consistent.
//   - Anchor slugs: fragment IDs for headings inside a note body. These keep
//     non-ASCII letters as written.
package slugs

import (
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// NoteID converts a note title to a stable identifier.
func NoteID(title string) string {
	title = strings.TrimSpace(title)
	id := goslug.Make(title)
	if id == "" {
		id = AnchorSlug(title)
	}
	return id
}

// AnchorSlug converts heading text to a fragment slug.
func AnchorSlug(text string) string {
	var result strings.Builder
	prevDash := false

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			result.WriteRune(r)
			prevDash = false
		case r == ' ' || r == '-' || r == '_' || r == ':':
			if !prevDash && result.Len() > 0 {
				result.WriteRune('-')
				prevDash = true
			}
		}
	}

	return strings.TrimSuffix(result.String(), "-")
}
