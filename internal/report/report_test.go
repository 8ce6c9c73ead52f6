package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuvia/lexgate/internal/breaker"
	"github.com/docuvia/lexgate/internal/parity"
	"github.com/docuvia/lexgate/internal/validate"
)

func sampleOutcome() *validate.Outcome {
	return &validate.Outcome{
		Results: map[string]*validate.ValidationResult{
			"doc-1": {DocumentID: "doc-1", FinalConfidence: 90},
			"doc-2": {DocumentID: "doc-2", FinalConfidence: 55, ShouldFallback: true, Issues: []string{"missing term"}},
			"doc-3": {DocumentID: "doc-3", FinalConfidence: 88, Issues: []string{"a", "b"}},
			"doc-4": {DocumentID: "doc-4", FinalConfidence: 95},
		},
		TotalValidated: 4,
	}
}

func TestAggregate(t *testing.T) {
	parityIssues := []parity.Issue{
		{DocumentType: "doc-1", AffectedLanguages: []string{"es"}, Message: "variable mismatch"},
	}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	r := Aggregate("run-1", sampleOutcome(), parityIssues, Thresholds{Confidence: 70, Trip: 3}, now)

	assert.Equal(t, 4, r.Summary.TotalValidated)
	assert.Equal(t, 1, r.Summary.TotalFallbacks)
	// 1 + 2 result issues + 1 parity issue.
	assert.Equal(t, 4, r.Summary.TotalIssues)
	assert.Equal(t, 75.0, r.Summary.QualityRate)
	assert.False(t, r.Paused)
	assert.Equal(t, now, r.Timestamp)
}

func TestAggregate_EmptyRun(t *testing.T) {
	r := Aggregate("run-2", &validate.Outcome{Results: map[string]*validate.ValidationResult{}}, nil,
		Thresholds{Confidence: 70, Trip: 3}, time.Now())
	assert.Zero(t, r.Summary.QualityRate)
	assert.Zero(t, r.Summary.TotalValidated)
}

func TestAggregate_TrippedRun(t *testing.T) {
	out := sampleOutcome()
	out.Tripped = true
	out.Skipped = []string{"doc-5"}

	r := Aggregate("run-3", out, nil, Thresholds{Confidence: 70, Trip: 3}, time.Now())
	assert.True(t, r.Paused)
	assert.Equal(t, []string{"doc-5"}, r.Skipped)
}

func TestWriteReportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "report.json")

	r := Aggregate("run-4", sampleOutcome(), nil, Thresholds{Confidence: 70, Trip: 3}, time.Now())
	require.NoError(t, WriteReport(path, r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Report
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, r.Summary, loaded.Summary)
	assert.Len(t, loaded.Results, 4)
}

func TestWriteErrorLog_EmptyProducesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.json")
	require.NoError(t, WriteErrorLog(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriteAlert(t *testing.T) {
	dir := t.TempDir()
	alert := breaker.Alert{
		Timestamp:           time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
		AlertType:           breaker.AlertTypeTripped,
		DocumentType:        "last-will-testament",
		Confidence:          48,
		ConsecutiveFailures: 3,
		Threshold:           3,
	}

	path, err := WriteAlert(dir, alert)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "alert-20260501T093000Z.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var loaded breaker.Alert
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, alert.DocumentType, loaded.DocumentType)
}

func TestFormatSummary(t *testing.T) {
	out := sampleOutcome()
	out.Tripped = true
	out.Skipped = []string{"doc-9"}
	r := Aggregate("run-5", out,
		[]parity.Issue{{DocumentType: "nda", AffectedLanguages: []string{"es"}, Message: "variable mismatch"}},
		Thresholds{Confidence: 70, Trip: 3}, time.Now())

	s := FormatSummary(r)
	assert.Contains(t, s, "Validated:    4")
	assert.Contains(t, s, "PAUSED")
	assert.Contains(t, s, "doc-2")
	assert.Contains(t, s, "variable mismatch")
}
