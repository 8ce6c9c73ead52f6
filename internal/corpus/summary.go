package corpus

import (
	"regexp"
	"sort"
	"strings"

	"github.com/docuvia/lexgate/internal/textutil"
)

// Summary is the structural digest of one (document, language) template:
// placeholder variables, section headings in order, and the numbered-section
// sequence. The parity checker compares these across languages.
type Summary struct {
	DocumentType     string              `json:"document_type"`
	Language         string              `json:"language"`
	Variables        map[string]struct{} `json:"-"`
	SectionHeadings  []string            `json:"section_headings"`
	NumberedSections []string            `json:"numbered_sections"`
}

var (
	headingRe         = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	numberedSectionRe = regexp.MustCompile(`(?m)^\s*(\d+(?:\.\d+)*)\.\s+\S`)
)

// Summarize derives a Summary from raw template content.
func Summarize(documentType, lang, content string) Summary {
	vars := make(map[string]struct{})
	for _, name := range textutil.Placeholders(content) {
		vars[name] = struct{}{}
	}

	var headings []string
	for _, m := range headingRe.FindAllStringSubmatch(content, -1) {
		headings = append(headings, strings.TrimSpace(m[1]))
	}

	var numbered []string
	for _, m := range numberedSectionRe.FindAllStringSubmatch(content, -1) {
		numbered = append(numbered, m[1])
	}

	return Summary{
		DocumentType:     documentType,
		Language:         lang,
		Variables:        vars,
		SectionHeadings:  headings,
		NumberedSections: numbered,
	}
}

// Summaries builds the per-language summaries for every pair that has content
// in a given language. Pairs without a target file contribute only the English
// summary.
func Summaries(pairs []TemplatePair) []Summary {
	var out []Summary
	for _, p := range pairs {
		out = append(out, Summarize(p.DocumentID, LangEnglish, p.SourceText))
		if p.HasTarget() {
			out = append(out, Summarize(p.DocumentID, LangSpanish, p.TargetText))
		}
	}
	return out
}

// VariableNames returns the sorted variable set of a summary. Helper for
// deterministic issue messages.
func (s Summary) VariableNames() []string {
	names := make([]string, 0, len(s.Variables))
	for v := range s.Variables {
		names = append(names, v)
	}
	sort.Strings(names)
	return names
}
