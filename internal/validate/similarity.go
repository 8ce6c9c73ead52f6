// Package validate implements the translation fidelity scoring engine: the
// leaf validators (similarity, terminology, structure), the confidence
// aggregator with business weighting, and the sequential run engine that
// feeds the circuit breaker.
package validate

import (
	"math"
	"unicode/utf8"

	"github.com/agext/levenshtein"

	"github.com/docuvia/lexgate/internal/textutil"
)

// Similarity returns a 0-100 normalized Levenshtein similarity between two
// strings, case-insensitive and symmetric. Two empty strings are identical
// (100); one empty string shares nothing with a non-empty one (0).
func Similarity(a, b string) int {
	na, nb := textutil.Normalize(a), textutil.Normalize(b)
	if na == "" && nb == "" {
		return 100
	}
	if na == "" || nb == "" {
		return 0
	}

	maxLen := utf8.RuneCountInString(na)
	if n := utf8.RuneCountInString(nb); n > maxLen {
		maxLen = n
	}
	dist := levenshtein.Distance(na, nb, nil)
	return int(math.Round(float64(maxLen-dist) / float64(maxLen) * 100))
}
