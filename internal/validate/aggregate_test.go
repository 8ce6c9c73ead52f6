package validate

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuvia/lexgate/internal/corpus"
	"github.com/docuvia/lexgate/internal/lexicon"
	"github.com/docuvia/lexgate/internal/weights"
)

// padToLength appends spaces so both texts have the same rune count,
// neutralizing the length score without touching sentence or placeholder
// counts.
func padToLength(s string, n int) string {
	return s + strings.Repeat(" ", n-utf8.RuneCountInString(s))
}

func TestValidate_WillClassWorkedExample(t *testing.T) {
	// Two lexicon terms in the source with no equivalent in the target:
	// terminology 60, structure 100, formatting 100, length 100.
	// Base = round(0.2*100 + 0.5*60 + 0.2*100 + 0.1*100) = 80.
	lex := lexicon.Lexicon{
		"notary public": {Equivalents: []string{"notario público"}},
		"witness":       {Equivalents: []string{"testigo"}},
	}
	src := "The witness and the notary public shall sign this document."
	tgt := "Los firmantes ponen su firma en este documento legal."
	n := utf8.RuneCountInString(src)
	if m := utf8.RuneCountInString(tgt); m > n {
		n = m
	}

	tbl := weights.Table{
		"last-will-testament": {Impact: 10, Risk: 3.0, Cost: 8},
	}
	agg := NewAggregator(lex, tbl, 70)

	res := agg.Validate(corpus.TemplatePair{
		DocumentID: "last-will-testament",
		SourceText: padToLength(src, n),
		TargetText: padToLength(tgt, n),
	})

	assert.Equal(t, 80, res.BaseConfidence)
	assert.InDelta(t, 3.75, res.Business.Multiplier, 1e-9)
	assert.Equal(t, "critical", res.Business.RiskCategory)
	// weighted = min(100, round(80 * 1.375)) = 100; final = round(100 * 0.85) = 85.
	assert.Equal(t, 85, res.FinalConfidence)
	assert.False(t, res.ShouldFallback)
	assert.Len(t, res.Issues, 2)
}

func TestValidate_DefaultWeightsForUnknownType(t *testing.T) {
	agg := NewAggregator(lexicon.Lexicon{}, weights.Default(), 70)
	text := "Identical text. Both sides."

	res := agg.Validate(corpus.TemplatePair{
		DocumentID: "unconfigured-type",
		SourceText: text,
		TargetText: text,
	})

	assert.Equal(t, 100, res.BaseConfidence)
	assert.Equal(t, 5.0, res.Business.Impact)
	assert.Equal(t, 1.5, res.Business.Risk)
	assert.Equal(t, 4.0, res.Business.Cost)
	assert.Equal(t, "standard", res.Business.RiskCategory)
	assert.Equal(t, 100, res.FinalConfidence, "weighting never exceeds 100")
	assert.False(t, res.ShouldFallback)
}

func TestValidate_FallbackBelowThreshold(t *testing.T) {
	lex := lexicon.Lexicon{
		"notary public":     {Equivalents: []string{"notario público"}},
		"power of attorney": {Equivalents: []string{"poder notarial"}},
		"witness":           {Equivalents: []string{"testigo"}},
	}
	agg := NewAggregator(lex, weights.Default(), 70)

	res := agg.Validate(corpus.TemplatePair{
		DocumentID: "bill-of-sale",
		SourceText: "The witness and notary public record the power of attorney. It binds all parties. {{party_name}} agrees.",
		TargetText: "Texto corto.",
	})

	require.Less(t, res.FinalConfidence, 70)
	assert.True(t, res.ShouldFallback)
	assert.NotEmpty(t, res.Issues)
	assert.NotEmpty(t, res.Recommendations)
}

func TestValidate_ElevatedRiskDampening(t *testing.T) {
	tbl := weights.Table{"lease-agreement": {Impact: 7, Risk: 2.0, Cost: 5}}
	agg := NewAggregator(lexicon.Lexicon{}, tbl, 70)
	text := "Same on both sides."

	res := agg.Validate(corpus.TemplatePair{
		DocumentID: "lease-agreement",
		SourceText: text,
		TargetText: text,
	})

	// weighted caps at 100, then 0.92 dampening for risk >= 2.0.
	assert.Equal(t, 92, res.FinalConfidence)
	assert.Equal(t, "elevated", res.Business.RiskCategory)
}

func TestLengthScore(t *testing.T) {
	assert.Equal(t, 100.0, lengthScore("", ""))
	assert.Equal(t, 100.0, lengthScore("abcd", "wxyz"))
	assert.InDelta(t, 50.0, lengthScore("ab", "wxyz"), 1e-9)
	assert.Equal(t, 0.0, lengthScore("", "x"))
}

func TestNewAggregator_DefaultThreshold(t *testing.T) {
	agg := NewAggregator(lexicon.Lexicon{}, weights.Default(), 0)
	assert.Equal(t, DefaultConfidenceThreshold, agg.Threshold())
}
