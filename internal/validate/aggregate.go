package validate

import (
	"math"
	"unicode/utf8"

	"github.com/docuvia/lexgate/internal/corpus"
	"github.com/docuvia/lexgate/internal/lexicon"
	"github.com/docuvia/lexgate/internal/weights"
)

// Base confidence weights. Terminology coverage dominates: a legal template
// with mistranslated terms of art is worse than one with awkward phrasing.
const (
	lengthWeight      = 0.2
	terminologyWeight = 0.5
	structureWeight   = 0.2
	formattingWeight  = 0.1
)

// DefaultConfidenceThreshold is the run-level confidence floor.
const DefaultConfidenceThreshold = 70

// BusinessMetrics records the weighting constants applied to one document.
type BusinessMetrics struct {
	Impact       float64 `json:"impact"`
	Risk         float64 `json:"risk"`
	Cost         float64 `json:"cost"`
	Multiplier   float64 `json:"multiplier"`
	RiskCategory string  `json:"risk_category"`
}

// ValidationResult is the immutable per-document outcome of one run.
type ValidationResult struct {
	DocumentID      string          `json:"document_id"`
	BaseConfidence  int             `json:"base_confidence"`
	Business        BusinessMetrics `json:"business_metrics"`
	FinalConfidence int             `json:"final_confidence"`
	Issues          []string        `json:"issues,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
	ShouldFallback  bool            `json:"should_fallback"`
}

// Aggregator merges the leaf validator scores into a final confidence.
type Aggregator struct {
	lex       lexicon.Lexicon
	table     weights.Table
	threshold int
}

// NewAggregator builds an aggregator. A non-positive threshold falls back to
// DefaultConfidenceThreshold.
func NewAggregator(lex lexicon.Lexicon, table weights.Table, threshold int) *Aggregator {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Aggregator{lex: lex, table: table, threshold: threshold}
}

// Threshold returns the configured confidence threshold.
func (a *Aggregator) Threshold() int {
	return a.threshold
}

// Validate scores one template pair. Leaf validators never fail; the result
// always carries a confidence and any accumulated issues.
func (a *Aggregator) Validate(pair corpus.TemplatePair) *ValidationResult {
	term := CheckTerminology(pair.SourceText, pair.TargetText, a.lex, pair.Region)
	structural := CheckStructure(pair.SourceText, pair.TargetText)
	length := lengthScore(pair.SourceText, pair.TargetText)

	base := int(math.Round(
		lengthWeight*length +
			terminologyWeight*float64(term.Score) +
			structureWeight*float64(structural.StructureScore) +
			formattingWeight*float64(structural.FormattingScore)))

	w := a.table.Lookup(pair.DocumentID)
	multiplier := w.Multiplier()

	weighted := int(math.Round(float64(base) * (1 + multiplier*0.1)))
	if weighted > 100 {
		weighted = 100
	}
	final := int(math.Round(float64(weighted) * w.Dampening()))

	issues := append(term.Issues, structural.Issues...)

	return &ValidationResult{
		DocumentID:     pair.DocumentID,
		BaseConfidence: base,
		Business: BusinessMetrics{
			Impact:       w.Impact,
			Risk:         w.Risk,
			Cost:         w.Cost,
			Multiplier:   multiplier,
			RiskCategory: w.RiskCategory(),
		},
		FinalConfidence: final,
		Issues:          issues,
		Recommendations: term.Recommendations,
		ShouldFallback:  final < a.threshold,
	}
}

// lengthScore is the ratio of the shorter text to the longer one, scaled to
// 0-100. Both empty counts as a perfect match.
func lengthScore(source, target string) float64 {
	srcLen := utf8.RuneCountInString(source)
	tgtLen := utf8.RuneCountInString(target)
	if srcLen == 0 && tgtLen == 0 {
		return 100
	}
	minLen, maxLen := srcLen, tgtLen
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}
	return float64(minLen) / float64(maxLen) * 100
}
