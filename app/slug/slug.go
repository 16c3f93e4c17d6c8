// Package slug derives URL-safe identifiers from post titles.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLen is the longest slug the post store accepts.
const MaxLen = 200

// stripMarks decomposes characters and drops their combining marks, so
// "Crème Brûlée" folds to "Creme Brulee" before hyphenation.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make produces a lowercase, hyphen-separated slug containing only
// [a-z0-9-], truncated to MaxLen. It is a pure function: uniqueness is the
// post store's job, not this package's.
func Make(title string) string {
	folded, _, err := transform.String(stripMarks, title)
	if err != nil {
		folded = title
	}

	// Whitespace, hyphens and underscores become single hyphens; other
	// non-alphanumeric runes are dropped entirely, so "What's" gives
	// "whats", not "what-s".
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pending = false
		case unicode.IsSpace(r), r == '-', r == '_':
			pending = true
		}
	}

	s := b.String()
	if len(s) > MaxLen {
		s = strings.TrimRight(s[:MaxLen], "-")
	}
	return s
}

// WithSuffix appends a numeric disambiguator to a slug, trimming the base
// so the result stays within MaxLen.
func WithSuffix(s string, n int) string {
	suffix := "-" + strconv.Itoa(n)
	if len(s)+len(suffix) > MaxLen {
		s = strings.TrimRight(s[:MaxLen-len(suffix)], "-")
	}
	return s + suffix
}
