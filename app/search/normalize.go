// Package search implements the text normalization and matching used by the
// site-wide free-text search.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// markStripper decomposes text and drops combining marks, so accented and
// plain spellings compare equal ("perché" matches "perche").
var markStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds text for matching: diacritics stripped, lowercased, runs
// of whitespace collapsed to single spaces, ends trimmed.
func Normalize(value string) string {
	folded, _, err := transform.String(markStripper, value)
	if err != nil {
		folded = value
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// Matches reports whether the normalized haystack contains the normalized
// query as a substring. An empty or whitespace-only query matches anything.
func Matches(haystack, query string) bool {
	q := Normalize(query)
	if q == "" {
		return true
	}
	return strings.Contains(Normalize(haystack), q)
}
