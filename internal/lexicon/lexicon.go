// Package lexicon holds the domain terminology table: English legal terms
// mapped to their accepted Spanish equivalents, optionally specialized by
// region. The table is static for a run; a YAML file can override the
// built-in defaults.
package lexicon

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Entry lists the accepted target-language equivalents for one source term.
// Regions maps a region code (e.g. "mx", "us") to region-specific equivalents
// that take precedence over the general list.
type Entry struct {
	Equivalents []string            `yaml:"equivalents"`
	Regions     map[string][]string `yaml:"regions,omitempty"`
}

// Lexicon maps a normalized source term to its entry.
type Lexicon map[string]Entry

// Equivalents returns the accepted equivalents for a term in the given
// region, falling back to the general list when the region has no override.
func (l Lexicon) Equivalents(term, region string) []string {
	e, ok := l[term]
	if !ok {
		return nil
	}
	if region != "" {
		if regional, ok := e.Regions[region]; ok {
			return regional
		}
	}
	return e.Equivalents
}

// Terms returns the lexicon's source terms in sorted order so validation
// output is deterministic.
func (l Lexicon) Terms() []string {
	terms := make([]string, 0, len(l))
	for t := range l {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// Default returns the built-in legal terminology table.
func Default() Lexicon {
	return Lexicon{
		"affidavit": {
			Equivalents: []string{"declaración jurada", "acta declaratoria"},
		},
		"beneficiary": {
			Equivalents: []string{"beneficiario", "beneficiaria"},
		},
		"guardian": {
			Equivalents: []string{"tutor", "tutora", "guardián"},
		},
		"landlord": {
			Equivalents: []string{"arrendador", "propietario"},
		},
		"lease": {
			Equivalents: []string{"arrendamiento", "contrato de arrendamiento"},
			Regions: map[string][]string{
				"mx": {"arrendamiento", "contrato de renta"},
			},
		},
		"notary public": {
			Equivalents: []string{"notario público", "fedatario público"},
		},
		"power of attorney": {
			Equivalents: []string{"poder notarial", "carta poder"},
		},
		"security deposit": {
			Equivalents: []string{"depósito de garantía", "depósito en garantía"},
		},
		"tenant": {
			Equivalents: []string{"arrendatario", "inquilino"},
		},
		"testament": {
			Equivalents: []string{"testamento"},
		},
		"witness": {
			Equivalents: []string{"testigo"},
		},
	}
}

// Load reads a lexicon from a YAML file. An empty path returns the defaults.
func Load(path string) (Lexicon, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "lexicon: read %s", path)
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, eris.Wrapf(err, "lexicon: parse %s", path)
	}
	if len(lex) == 0 {
		return nil, eris.Errorf("lexicon: %s contains no terms", path)
	}
	return lex, nil
}
