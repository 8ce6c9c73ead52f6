// Package textutil provides text normalization and counting helpers shared by
// the validators. The patterns are exported so boundary cases can be exercised
// directly in tests.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SentenceSplitPattern matches one or more terminal punctuation marks. A text
// splits into sentences on every run of these characters.
const SentenceSplitPattern = `[.!?]+`

// PlaceholderPattern matches a double-brace template placeholder such as
// {{tenant_name}}.
const PlaceholderPattern = `\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`

var (
	sentenceRe    = regexp.MustCompile(SentenceSplitPattern)
	placeholderRe = regexp.MustCompile(PlaceholderPattern)

	// Spanish casing folds accented capitals correctly; it is a superset of
	// what English needs, so one caser serves both sides of a pair.
	lowerCaser = cases.Lower(language.Spanish)
)

// Normalize lowercases and trims a string for case-insensitive comparison.
func Normalize(s string) string {
	return strings.TrimSpace(lowerCaser.String(s))
}

// Contains reports whether needle appears in haystack after both are
// normalized.
func Contains(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// CountSentences returns the number of non-empty segments produced by
// splitting on terminal punctuation.
func CountSentences(text string) int {
	n := 0
	for _, seg := range sentenceRe.Split(text, -1) {
		if strings.TrimSpace(seg) != "" {
			n++
		}
	}
	return n
}

// CountPlaceholders returns the number of {{...}} placeholders in text.
func CountPlaceholders(text string) int {
	return len(placeholderRe.FindAllString(text, -1))
}

// Placeholders returns the de-duplicated placeholder names in text, in first
// occurrence order.
func Placeholders(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
