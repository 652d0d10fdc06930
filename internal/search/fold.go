package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold lower-cases s for case-insensitive comparison. A Caser holds state, so
// one is built per call.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// ContainsFold reports whether needle occurs in haystack, ignoring case.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
