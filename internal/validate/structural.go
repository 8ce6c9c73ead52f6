package validate

import (
	"fmt"

	"github.com/docuvia/lexgate/internal/textutil"
)

// SentenceDeltaTolerance is the maximum allowed difference in sentence counts
// between source and translation before the structure score is reduced.
const SentenceDeltaTolerance = 2

// StructuralResult holds the two independent structural scores. Structure
// covers sentence-count drift; formatting covers placeholder parity. They are
// fed separately into the aggregator.
type StructuralResult struct {
	StructureScore  int
	FormattingScore int
	Issues          []string
}

// CheckStructure runs the sentence-count and placeholder-count checks.
func CheckStructure(source, target string) StructuralResult {
	res := StructuralResult{StructureScore: 100, FormattingScore: 100}

	srcSentences := textutil.CountSentences(source)
	tgtSentences := textutil.CountSentences(target)
	delta := srcSentences - tgtSentences
	if delta < 0 {
		delta = -delta
	}
	if delta > SentenceDeltaTolerance {
		res.StructureScore = 70
	}

	srcPlaceholders := textutil.CountPlaceholders(source)
	tgtPlaceholders := textutil.CountPlaceholders(target)
	if srcPlaceholders != tgtPlaceholders {
		res.FormattingScore = 50
		res.Issues = append(res.Issues, fmt.Sprintf(
			"placeholder count mismatch: %d in source, %d in translation",
			srcPlaceholders, tgtPlaceholders))
	}

	return res
}
