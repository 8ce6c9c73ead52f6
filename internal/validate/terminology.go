package validate

import (
	"fmt"
	"strings"

	"github.com/docuvia/lexgate/internal/lexicon"
	"github.com/docuvia/lexgate/internal/textutil"
)

// MissingTermPenalty is subtracted from the terminology score for every
// source term whose accepted equivalents are all absent from the translation.
const MissingTermPenalty = 20

// TerminologyResult holds the terminology coverage score and the issues and
// recommendations accumulated while checking the lexicon.
type TerminologyResult struct {
	Score           int
	Issues          []string
	Recommendations []string
}

// CheckTerminology verifies that every lexicon term present in the source
// text has at least one accepted equivalent in the target text. Terms are
// checked in sorted order so output is deterministic.
func CheckTerminology(source, target string, lex lexicon.Lexicon, region string) TerminologyResult {
	res := TerminologyResult{Score: 100}

	for _, term := range lex.Terms() {
		if !textutil.Contains(source, term) {
			continue
		}

		equivalents := lex.Equivalents(term, region)
		found := false
		for _, eq := range equivalents {
			if textutil.Contains(target, eq) {
				found = true
				break
			}
		}
		if found {
			continue
		}

		res.Score -= MissingTermPenalty
		res.Issues = append(res.Issues,
			fmt.Sprintf("legal term %q has no accepted equivalent in the translation", term))
		res.Recommendations = append(res.Recommendations,
			fmt.Sprintf("translate %q as one of: %s", term, strings.Join(equivalents, ", ")))
	}

	if res.Score < 0 {
		res.Score = 0
	}
	return res
}
