// Package corpus reads the bilingual template corpus and the document
// metadata manifest. All inputs are read-only for the duration of a run.
package corpus

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Supported corpus languages. Summaries in any other language are ignored.
const (
	LangEnglish = "en"
	LangSpanish = "es"
)

// TemplatePair holds the source- and target-language content for one document.
// TargetText is empty when the counterpart file is missing.
type TemplatePair struct {
	DocumentID string `json:"document_id"`
	SourceText string `json:"-"`
	TargetText string `json:"-"`
	Region     string `json:"region,omitempty"`
}

// HasTarget reports whether a target-language file was found for the document.
func (p TemplatePair) HasTarget() bool {
	return p.TargetText != ""
}

// Load walks <dir>/en and <dir>/es and pairs templates by file stem. Every
// source-language file produces a pair; a missing Spanish counterpart leaves
// TargetText empty so the engine can report it. Pairs are returned in sorted
// DocumentID order, which fixes the processing order for a run.
func Load(dir string) ([]TemplatePair, error) {
	sources, err := readLanguageDir(filepath.Join(dir, LangEnglish))
	if err != nil {
		return nil, eris.Wrapf(err, "corpus: read source dir %s", dir)
	}
	targets, err := readLanguageDir(filepath.Join(dir, LangSpanish))
	if err != nil {
		return nil, eris.Wrapf(err, "corpus: read target dir %s", dir)
	}

	ids := make([]string, 0, len(sources))
	for id := range sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	pairs := make([]TemplatePair, 0, len(ids))
	for _, id := range ids {
		pairs = append(pairs, TemplatePair{
			DocumentID: id,
			SourceText: sources[id],
			TargetText: targets[id],
		})
	}

	zap.L().Debug("corpus: loaded template pairs",
		zap.String("dir", dir),
		zap.Int("sources", len(sources)),
		zap.Int("targets", len(targets)),
	)
	return pairs, nil
}

// LoadPair reads a single document's pair by id. Used by watch mode to
// re-validate one changed document.
func LoadPair(dir, documentID string) (*TemplatePair, error) {
	src, err := readTemplateFile(filepath.Join(dir, LangEnglish), documentID)
	if err != nil {
		return nil, eris.Wrapf(err, "corpus: read source template %s", documentID)
	}
	tgt, _ := readTemplateFile(filepath.Join(dir, LangSpanish), documentID)
	return &TemplatePair{DocumentID: documentID, SourceText: src, TargetText: tgt}, nil
}

func readLanguageDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, eris.Wrapf(err, "corpus: read dir %s", dir)
	}

	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isTemplateFile(e.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, eris.Wrapf(err, "corpus: read file %s", e.Name())
		}
		out[docID(e.Name())] = string(data)
	}
	return out, nil
}

func readTemplateFile(dir, documentID string) (string, error) {
	for _, ext := range []string{".md", ".txt"} {
		data, err := os.ReadFile(filepath.Join(dir, documentID+ext))
		if err == nil {
			return string(data), nil
		}
	}
	return "", eris.Errorf("corpus: no template file for %s in %s", documentID, dir)
}

func isTemplateFile(name string) bool {
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".txt")
}

// docID strips the extension from a template file name.
func docID(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
