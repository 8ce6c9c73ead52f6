// Package report combines per-document validation results and parity issues
// into a run report, and writes the report, error log, and alert records to
// disk. Scoring stays pure; every filesystem side effect lives here or in the
// store.
package report

import (
	"math"
	"time"

	"github.com/docuvia/lexgate/internal/parity"
	"github.com/docuvia/lexgate/internal/validate"
)

// Thresholds records the run-level policy values for the report consumer.
type Thresholds struct {
	Confidence int `json:"confidence"`
	Trip       int `json:"trip"`
}

// Summary is the roll-up block of a run report.
type Summary struct {
	TotalValidated int     `json:"total_validated"`
	TotalFallbacks int     `json:"total_fallbacks"`
	TotalIssues    int     `json:"total_issues"`
	QualityRate    float64 `json:"quality_rate"`
}

// Report is the full output of one quality-gate run.
type Report struct {
	RunID        string                                 `json:"run_id"`
	Timestamp    time.Time                              `json:"timestamp"`
	Summary      Summary                                `json:"summary"`
	Results      map[string]*validate.ValidationResult  `json:"results"`
	Errors       []validate.ErrorEntry                  `json:"errors,omitempty"`
	ParityIssues []parity.Issue                         `json:"parity_issues,omitempty"`
	Thresholds   Thresholds                             `json:"thresholds"`
	Paused       bool                                   `json:"paused"`
	Skipped      []string                               `json:"skipped,omitempty"`
}

// Aggregate builds a report from a run outcome and an independent parity
// pass. QualityRate is the percentage of validated documents that cleared
// the confidence threshold.
func Aggregate(runID string, out *validate.Outcome, parityIssues []parity.Issue, th Thresholds, now time.Time) *Report {
	fallbacks := 0
	issueCount := len(parityIssues)
	for _, res := range out.Results {
		if res.ShouldFallback {
			fallbacks++
		}
		issueCount += len(res.Issues)
	}

	rate := 0.0
	if out.TotalValidated > 0 {
		rate = math.Round(float64(out.TotalValidated-fallbacks)/float64(out.TotalValidated)*1000) / 10
	}

	return &Report{
		RunID:     runID,
		Timestamp: now.UTC(),
		Summary: Summary{
			TotalValidated: out.TotalValidated,
			TotalFallbacks: fallbacks,
			TotalIssues:    issueCount,
			QualityRate:    rate,
		},
		Results:      out.Results,
		Errors:       out.Errors,
		ParityIssues: parityIssues,
		Thresholds:   th,
		Paused:       out.Tripped,
		Skipped:      out.Skipped,
	}
}
