package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/docuvia/lexgate/internal/breaker"
	"github.com/docuvia/lexgate/internal/parity"
	"github.com/docuvia/lexgate/internal/validate"
)

// WriteReport writes the run report as indented JSON.
func WriteReport(path string, r *Report) error {
	return writeJSON(path, r, "report")
}

// WriteErrorLog writes the error log as indented JSON. An empty log still
// produces a file so consumers can distinguish "clean run" from "no run".
func WriteErrorLog(path string, entries []validate.ErrorEntry) error {
	if entries == nil {
		entries = []validate.ErrorEntry{}
	}
	return writeJSON(path, entries, "error log")
}

// WriteParityIssues writes standalone parity findings as indented JSON. An
// empty finding set still produces a file.
func WriteParityIssues(path string, issues []parity.Issue) error {
	if issues == nil {
		issues = []parity.Issue{}
	}
	return writeJSON(path, issues, "parity findings")
}

// WriteAlert writes one alert record file per trip event into dir and returns
// the file path.
func WriteAlert(dir string, alert breaker.Alert) (string, error) {
	name := fmt.Sprintf("alert-%s.json", alert.Timestamp.UTC().Format("20060102T150405Z"))
	path := filepath.Join(dir, name)
	if err := writeJSON(path, alert, "alert"); err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(path string, v any, what string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "report: create dir for %s", what)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "report: marshal %s", what)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "report: write %s to %s", what, path)
	}
	return nil
}

// FormatSummary renders the console summary of a run.
func FormatSummary(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s\n", r.RunID)
	fmt.Fprintf(&b, "Validated:    %d\n", r.Summary.TotalValidated)
	fmt.Fprintf(&b, "Fallbacks:    %d\n", r.Summary.TotalFallbacks)
	fmt.Fprintf(&b, "Issues:       %d\n", r.Summary.TotalIssues)
	fmt.Fprintf(&b, "Quality rate: %.1f%%\n", r.Summary.QualityRate)
	if r.Paused {
		fmt.Fprintf(&b, "Status:       PAUSED (circuit breaker tripped, %d skipped)\n", len(r.Skipped))
	} else {
		fmt.Fprintf(&b, "Status:       ok\n")
	}

	if len(r.Results) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%-28s %6s %6s %5s %-10s\n", "Document", "Base", "Final", "Fall", "Risk")
		fmt.Fprintln(&b, strings.Repeat("-", 60))

		ids := make([]string, 0, len(r.Results))
		for id := range r.Results {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			res := r.Results[id]
			fmt.Fprintf(&b, "%-28s %6d %6d %5v %-10s\n",
				truncate(id, 28), res.BaseConfidence, res.FinalConfidence,
				res.ShouldFallback, res.Business.RiskCategory)
		}
	}

	if len(r.ParityIssues) > 0 {
		b.WriteString("\nParity issues:\n")
		for _, issue := range r.ParityIssues {
			fmt.Fprintf(&b, "- [%s] %s (%s)\n",
				issue.DocumentType, issue.Message, strings.Join(issue.AffectedLanguages, ","))
		}
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
