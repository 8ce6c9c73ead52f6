// Package parity cross-checks structural consistency between the language
// variants of each document: placeholder variables, section headings,
// numbered-section sequences, and metadata alias counts. Parity findings are
// reported independently of confidence scoring and never feed the circuit
// breaker.
package parity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docuvia/lexgate/internal/corpus"
)

// Issue is one detected structural inconsistency.
type Issue struct {
	DocumentType      string   `json:"document_type"`
	AffectedLanguages []string `json:"affected_languages"`
	Message           string   `json:"message"`
}

var supportedLanguages = map[string]bool{
	corpus.LangEnglish: true,
	corpus.LangSpanish: true,
}

// Checker holds the fixed lookup tables the parity pass needs: the document
// type alias table (corpus ids that differ from metadata ids) and the
// hand-curated critical-variable lists.
type Checker struct {
	// Aliases maps a corpus document type to its metadata manifest id.
	Aliases map[string]string

	// CriticalVariables lists placeholders that must exist in every language
	// variant of a document type, such as notarization and witness fields.
	CriticalVariables map[string][]string
}

// NewChecker returns a checker with the built-in lookup tables.
func NewChecker() *Checker {
	return &Checker{
		Aliases: map[string]string{
			"last-will-testament": "will",
			"poa-financial":       "power-of-attorney",
			"residential-lease":   "lease-agreement",
		},
		CriticalVariables: map[string][]string{
			"last-will-testament": {"testator_name", "witness_one_name", "witness_two_name", "notary_name"},
			"power-of-attorney":   {"principal_name", "agent_name", "notary_name"},
			"medical-directive":   {"declarant_name", "witness_one_name"},
			"lease-agreement":     {"landlord_name", "tenant_name"},
		},
	}
}

// Check diffs every document's language variants against each other and the
// metadata manifest. It is a pure function of its inputs: checks are
// independent, a document can produce several issues, and no ordering is
// significant.
func (c *Checker) Check(summaries []corpus.Summary, meta map[string]corpus.MetadataEntry) []Issue {
	byType := make(map[string]map[string]corpus.Summary)
	var types []string
	for _, s := range summaries {
		if !supportedLanguages[s.Language] {
			continue
		}
		if byType[s.DocumentType] == nil {
			byType[s.DocumentType] = make(map[string]corpus.Summary)
			types = append(types, s.DocumentType)
		}
		byType[s.DocumentType][s.Language] = s
	}
	sort.Strings(types)

	var issues []Issue
	for _, docType := range types {
		issues = append(issues, c.checkDocument(docType, byType[docType], meta)...)
	}
	return issues
}

func (c *Checker) checkDocument(docType string, langs map[string]corpus.Summary, meta map[string]corpus.MetadataEntry) []Issue {
	var issues []Issue

	entry, ok := c.resolveMetadata(docType, meta)
	if !ok {
		return []Issue{{
			DocumentType:      docType,
			AffectedLanguages: languagesOf(langs),
			Message:           "no metadata manifest entry for document",
		}}
	}

	// Language asymmetry between templates and metadata.
	for lang := range supportedLanguages {
		_, hasTemplate := langs[lang]
		_, hasMeta := entry.Translations[lang]
		switch {
		case hasMeta && !hasTemplate:
			issues = append(issues, Issue{
				DocumentType:      docType,
				AffectedLanguages: []string{lang},
				Message:           fmt.Sprintf("template missing for %s but metadata declares support", lang),
			})
		case hasTemplate && !hasMeta:
			issues = append(issues, Issue{
				DocumentType:      docType,
				AffectedLanguages: []string{lang},
				Message:           fmt.Sprintf("metadata missing translation block for %s", lang),
			})
		}
	}

	en, hasEN := langs[corpus.LangEnglish]
	es, hasES := langs[corpus.LangSpanish]
	if hasEN && hasES {
		issues = append(issues, c.checkCriticalVariables(docType, en, es)...)
		issues = append(issues, checkVariableSets(docType, en, es)...)
		issues = append(issues, checkHeadingCounts(docType, en, es)...)
		issues = append(issues, checkNumberedSections(docType, en, es)...)
	}

	issues = append(issues, checkAliasCounts(docType, entry)...)
	return issues
}

// resolveMetadata finds the manifest entry for a document type, following the
// alias table when the corpus id differs from the metadata id.
func (c *Checker) resolveMetadata(docType string, meta map[string]corpus.MetadataEntry) (corpus.MetadataEntry, bool) {
	if e, ok := meta[docType]; ok {
		return e, true
	}
	if alias, ok := c.Aliases[docType]; ok {
		if e, ok := meta[alias]; ok {
			return e, true
		}
	}
	return corpus.MetadataEntry{}, false
}

func (c *Checker) checkCriticalVariables(docType string, en, es corpus.Summary) []Issue {
	critical, ok := c.CriticalVariables[docType]
	if !ok {
		return nil
	}

	var missingEN, missingES []string
	for _, v := range critical {
		if _, ok := en.Variables[v]; !ok {
			missingEN = append(missingEN, v)
		}
		if _, ok := es.Variables[v]; !ok {
			missingES = append(missingES, v)
		}
	}
	if len(missingEN) == 0 && len(missingES) == 0 {
		return nil
	}

	return []Issue{{
		DocumentType:      docType,
		AffectedLanguages: affectedSides(missingEN, missingES),
		Message:           "critical variables " + sidesMessage(missingEN, missingES),
	}}
}

func checkVariableSets(docType string, en, es corpus.Summary) []Issue {
	var missingEN, missingES []string
	for v := range es.Variables {
		if _, ok := en.Variables[v]; !ok {
			missingEN = append(missingEN, v)
		}
	}
	for v := range en.Variables {
		if _, ok := es.Variables[v]; !ok {
			missingES = append(missingES, v)
		}
	}
	if len(missingEN) == 0 && len(missingES) == 0 {
		return nil
	}
	sort.Strings(missingEN)
	sort.Strings(missingES)

	return []Issue{{
		DocumentType:      docType,
		AffectedLanguages: affectedSides(missingEN, missingES),
		Message:           "variable mismatch: " + sidesMessage(missingEN, missingES),
	}}
}

func checkHeadingCounts(docType string, en, es corpus.Summary) []Issue {
	if len(en.SectionHeadings) == len(es.SectionHeadings) {
		return nil
	}
	return []Issue{{
		DocumentType:      docType,
		AffectedLanguages: []string{corpus.LangEnglish, corpus.LangSpanish},
		Message: fmt.Sprintf("section heading count mismatch: %d in EN, %d in ES",
			len(en.SectionHeadings), len(es.SectionHeadings)),
	}}
}

func checkNumberedSections(docType string, en, es corpus.Summary) []Issue {
	if equalSequences(en.NumberedSections, es.NumberedSections) {
		return nil
	}
	return []Issue{{
		DocumentType:      docType,
		AffectedLanguages: []string{corpus.LangEnglish, corpus.LangSpanish},
		Message: fmt.Sprintf("numbered section sequence mismatch: EN [%s] vs ES [%s]",
			strings.Join(en.NumberedSections, " "), strings.Join(es.NumberedSections, " ")),
	}}
}

func checkAliasCounts(docType string, entry corpus.MetadataEntry) []Issue {
	en, hasEN := entry.Translations[corpus.LangEnglish]
	es, hasES := entry.Translations[corpus.LangSpanish]
	if !hasEN || !hasES || en.Aliases == nil || es.Aliases == nil {
		return nil
	}
	if len(en.Aliases) == len(es.Aliases) {
		return nil
	}
	return []Issue{{
		DocumentType:      docType,
		AffectedLanguages: []string{corpus.LangEnglish, corpus.LangSpanish},
		Message: fmt.Sprintf("metadata alias count mismatch: %d in EN, %d in ES",
			len(en.Aliases), len(es.Aliases)),
	}}
}

func equalSequences(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func languagesOf(langs map[string]corpus.Summary) []string {
	out := make([]string, 0, len(langs))
	for lang := range langs {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// affectedSides reports which languages are missing something.
func affectedSides(missingEN, missingES []string) []string {
	var out []string
	if len(missingEN) > 0 {
		out = append(out, corpus.LangEnglish)
	}
	if len(missingES) > 0 {
		out = append(out, corpus.LangSpanish)
	}
	return out
}

// sidesMessage renders "missing in EN: ...; missing in ES: ..." listing only
// the sides that have gaps.
func sidesMessage(missingEN, missingES []string) string {
	var parts []string
	if len(missingEN) > 0 {
		parts = append(parts, "missing in EN: "+strings.Join(missingEN, ", "))
	}
	if len(missingES) > 0 {
		parts = append(parts, "missing in ES: "+strings.Join(missingES, ", "))
	}
	return strings.Join(parts, "; ")
}
