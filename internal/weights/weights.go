// Package weights holds the per-document-type business weighting table used
// to scale base confidence by liability impact, regulatory risk, and
// remediation cost.
package weights

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Risk-tier boundaries for dampening. A risk multiplier at or above
// CriticalRisk marks a document critical; at or above ElevatedRisk, elevated.
const (
	CriticalRisk = 2.5
	ElevatedRisk = 2.0

	criticalDampening = 0.85
	elevatedDampening = 0.92
)

// BusinessWeight holds the three configured constants for a document type.
type BusinessWeight struct {
	// Impact is the liability severity of a bad translation, 1-10.
	Impact float64 `yaml:"impact" json:"impact"`
	// Risk is the regulatory-consequence multiplier, typically 1.0-3.0.
	Risk float64 `yaml:"risk" json:"risk"`
	// Cost is the estimated hours to remediate a bad translation, >= 1.
	Cost float64 `yaml:"cost" json:"cost"`
}

// Multiplier returns impact*risk/cost, the business-impact multiplier applied
// to base confidence.
func (w BusinessWeight) Multiplier() float64 {
	if w.Cost <= 0 {
		return 0
	}
	return w.Impact * w.Risk / w.Cost
}

// RiskCategory buckets the risk multiplier into a reporting tier.
func (w BusinessWeight) RiskCategory() string {
	switch {
	case w.Risk >= CriticalRisk:
		return "critical"
	case w.Risk >= ElevatedRisk:
		return "elevated"
	default:
		return "standard"
	}
}

// Dampening returns the risk-tier dampening factor applied after business
// weighting.
func (w BusinessWeight) Dampening() float64 {
	switch {
	case w.Risk >= CriticalRisk:
		return criticalDampening
	case w.Risk >= ElevatedRisk:
		return elevatedDampening
	default:
		return 1.0
	}
}

// Table maps document types to their business weights.
type Table map[string]BusinessWeight

// DefaultWeight is used for document types without a configured entry.
func DefaultWeight() BusinessWeight {
	return BusinessWeight{Impact: 5, Risk: 1.5, Cost: 4}
}

// Default returns the built-in weighting table.
func Default() Table {
	return Table{
		"last-will-testament": {Impact: 10, Risk: 3.0, Cost: 8},
		"power-of-attorney":   {Impact: 9, Risk: 2.8, Cost: 6},
		"medical-directive":   {Impact: 9, Risk: 2.6, Cost: 6},
		"lease-agreement":     {Impact: 7, Risk: 2.0, Cost: 5},
		"employment-contract": {Impact: 6, Risk: 2.0, Cost: 4},
		"nda":                 {Impact: 5, Risk: 1.5, Cost: 3},
		"bill-of-sale":        {Impact: 4, Risk: 1.2, Cost: 2},
	}
}

// Lookup returns the weight for a document type, falling back to
// DefaultWeight for unconfigured types. The fallback is explicit so a lookup
// is never silently absent.
func (t Table) Lookup(documentType string) BusinessWeight {
	if w, ok := t[documentType]; ok {
		return w
	}
	return DefaultWeight()
}

// Load reads a weighting table from a YAML file. An empty path returns the
// defaults.
func Load(path string) (Table, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "weights: read %s", path)
	}

	var tbl Table
	if err := yaml.Unmarshal(data, &tbl); err != nil {
		return nil, eris.Wrapf(err, "weights: parse %s", path)
	}
	return tbl, nil
}

// Validate checks that every entry is internally consistent.
func Validate(t Table) error {
	for docType, w := range t {
		if w.Impact < 1 || w.Impact > 10 {
			return eris.Errorf("weights: %s impact must be 1-10 (got %.1f)", docType, w.Impact)
		}
		if w.Risk < 1.0 {
			return eris.Errorf("weights: %s risk must be >= 1.0 (got %.2f)", docType, w.Risk)
		}
		if w.Cost < 1 {
			return eris.Errorf("weights: %s cost must be >= 1 (got %.1f)", docType, w.Cost)
		}
	}
	return nil
}
