package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckStructure_WithinTolerance(t *testing.T) {
	src := "One. Two. Three. Four."
	tgt := "Uno. Dos."

	res := CheckStructure(src, tgt)
	assert.Equal(t, 100, res.StructureScore, "delta of 2 is within tolerance")
	assert.Equal(t, 100, res.FormattingScore)
	assert.Empty(t, res.Issues)
}

func TestCheckStructure_BeyondTolerance(t *testing.T) {
	src := "One. Two. Three. Four. Five."
	tgt := "Uno."

	res := CheckStructure(src, tgt)
	assert.Equal(t, 70, res.StructureScore)
	assert.Equal(t, 100, res.FormattingScore)
}

func TestCheckStructure_PlaceholderMismatch(t *testing.T) {
	src := "I, {{principal_name}}, appoint {{agent_name}}."
	tgt := "Yo, {{principal_name}}, nombro a mi representante."

	res := CheckStructure(src, tgt)
	assert.Equal(t, 100, res.StructureScore)
	assert.Equal(t, 50, res.FormattingScore)
	assert.Len(t, res.Issues, 1)
	assert.Contains(t, res.Issues[0], "2 in source, 1 in translation")
}

func TestCheckStructure_IndependentScores(t *testing.T) {
	src := "{{a}} one. Two. Three. Four. Five."
	tgt := "Uno."

	res := CheckStructure(src, tgt)
	assert.Equal(t, 70, res.StructureScore)
	assert.Equal(t, 50, res.FormattingScore)
}
