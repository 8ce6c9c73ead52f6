package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leaseEN = `# Residential Lease Agreement

This lease is made between {{landlord_name}} and {{tenant_name}}.

## Terms

1. Rent. The monthly rent is {{rent_amount}}.
2. Term. The lease begins on {{start_date}}.
3. Security Deposit. {{deposit_amount}} is due at signing.
`

func TestSummarize(t *testing.T) {
	s := Summarize("lease-agreement", LangEnglish, leaseEN)

	assert.Equal(t, "lease-agreement", s.DocumentType)
	assert.Equal(t, LangEnglish, s.Language)
	assert.Equal(t,
		[]string{"deposit_amount", "landlord_name", "rent_amount", "start_date", "tenant_name"},
		s.VariableNames(),
	)
	assert.Equal(t, []string{"Residential Lease Agreement", "Terms"}, s.SectionHeadings)
	assert.Equal(t, []string{"1", "2", "3"}, s.NumberedSections)
}

func TestSummarizeNestedNumbering(t *testing.T) {
	content := "1. First\n1.1. Sub\n2. Second\n"
	s := Summarize("will", LangEnglish, content)
	assert.Equal(t, []string{"1", "1.1", "2"}, s.NumberedSections)
}

func TestSummaries_SkipsMissingTarget(t *testing.T) {
	pairs := []TemplatePair{
		{DocumentID: "lease-agreement", SourceText: leaseEN, TargetText: "# Contrato\n{{tenant_name}}"},
		{DocumentID: "nda", SourceText: "# NDA"},
	}
	sums := Summaries(pairs)
	require.Len(t, sums, 3)
	assert.Equal(t, LangSpanish, sums[1].Language)
	assert.Equal(t, "nda", sums[2].DocumentType)
	assert.Equal(t, LangEnglish, sums[2].Language)
}

func TestLoadMetadata_MissingFile(t *testing.T) {
	_, err := LoadMetadata("/nonexistent/metadata.json")
	require.Error(t, err)
}
