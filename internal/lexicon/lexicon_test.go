package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquivalents_RegionOverride(t *testing.T) {
	lex := Default()

	general := lex.Equivalents("lease", "")
	assert.Contains(t, general, "contrato de arrendamiento")

	mx := lex.Equivalents("lease", "mx")
	assert.Contains(t, mx, "contrato de renta")
	assert.NotContains(t, mx, "contrato de arrendamiento")

	// Region without an override falls back to the general list.
	assert.Equal(t, general, lex.Equivalents("lease", "pr"))

	assert.Nil(t, lex.Equivalents("unknown term", ""))
}

func TestTerms_Sorted(t *testing.T) {
	terms := Default().Terms()
	require.NotEmpty(t, terms)
	for i := 1; i < len(terms); i++ {
		assert.Less(t, terms[i-1], terms[i])
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	content := `
notary public:
  equivalents: ["notario público"]
witness:
  equivalents: ["testigo"]
  regions:
    mx: ["testigo", "atestiguante"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lex, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, lex, 2)
	assert.Equal(t, []string{"testigo", "atestiguante"}, lex.Equivalents("witness", "mx"))
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	lex, err := Load("")
	require.NoError(t, err)
	assert.Contains(t, lex, "power of attorney")
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
