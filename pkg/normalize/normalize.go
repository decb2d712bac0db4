// Package normalize canonicalizes free-text tracking fields so that the same
// logical value ("New York", "new_york", " new york ") always aggregates under
// one key.
//
// Normalization trims surrounding whitespace and byte order marks, collapses
// every run of hyphens, underscores and whitespace to a single hyphen, and
// lowercases the result:
//
//	normalize.Value("  New_York City ") // "new-york-city"
//
// All functions are pure and idempotent.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// Hyphen, underscore and any Unicode space (including NBSP and BOM).
var reSeparators = regexp.MustCompile(`[-_\s\v\p{Z}\x{85}\x{FEFF}]+`)

// isSpace matches the space runes in reSeparators.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Value returns the normalized form of s.
func Value(s string) string {
	s = strings.TrimFunc(s, isSpace)
	if s == "" {
		return ""
	}
	s = reSeparators.ReplaceAllString(s, "-")
	return strings.ToLower(s)
}

// Optional normalizes an optional field. A nil pointer normalizes to "".
func Optional(s *string) string {
	if s == nil {
		return ""
	}
	return Value(*s)
}
