package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, lang, name, content string) {
	t.Helper()
	langDir := filepath.Join(dir, lang)
	require.NoError(t, os.MkdirAll(langDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(langDir, name), []byte(content), 0o644))
}

func TestLoad_PairsByStem(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, LangEnglish, "lease-agreement.md", "English lease.")
	writeTemplate(t, dir, LangEnglish, "nda.md", "English NDA.")
	writeTemplate(t, dir, LangSpanish, "lease-agreement.md", "Contrato en español.")

	pairs, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	// Sorted by document id.
	assert.Equal(t, "lease-agreement", pairs[0].DocumentID)
	assert.True(t, pairs[0].HasTarget())
	assert.Equal(t, "nda", pairs[1].DocumentID)
	assert.False(t, pairs[1].HasTarget())
}

func TestLoad_MissingSourceDir(t *testing.T) {
	pairs, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestLoadPair(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, LangEnglish, "will.md", "Last will.")
	writeTemplate(t, dir, LangSpanish, "will.md", "Testamento.")

	p, err := LoadPair(dir, "will")
	require.NoError(t, err)
	assert.Equal(t, "Last will.", p.SourceText)
	assert.Equal(t, "Testamento.", p.TargetText)

	_, err = LoadPair(dir, "missing-doc")
	require.Error(t, err)
}

func TestLoadMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.json")
	manifest := `{
		"lease-agreement": {
			"translations": {
				"en": {"name": "Lease Agreement", "aliases": ["rental contract", "lease"]},
				"es": {"name": "Contrato de Arrendamiento", "aliases": ["contrato de renta"]}
			}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	entries, err := LoadMetadata(path)
	require.NoError(t, err)
	require.Contains(t, entries, "lease-agreement")

	e := entries["lease-agreement"]
	assert.Equal(t, "lease-agreement", e.ID, "id backfilled from map key")
	assert.Len(t, e.Translations["en"].Aliases, 2)
	assert.Len(t, e.Translations["es"].Aliases, 1)
}
