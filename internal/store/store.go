// Package store persists run history and the circuit-breaker checkpoint.
package store

import (
	"context"
	"time"

	"github.com/docuvia/lexgate/internal/breaker"
	"github.com/docuvia/lexgate/internal/report"
)

// RunRecord is one row of run history.
type RunRecord struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	TotalValidated int       `json:"total_validated"`
	TotalFallbacks int       `json:"total_fallbacks"`
	TotalIssues    int       `json:"total_issues"`
	QualityRate    float64   `json:"quality_rate"`
	Paused         bool      `json:"paused"`
}

// Store defines the persistence interface for the quality gate. It subsumes
// the breaker's checkpoint port so one handle serves both concerns.
type Store interface {
	breaker.CheckpointStore

	SaveRun(ctx context.Context, r *report.Report) error
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)

	Migrate(ctx context.Context) error
	Close() error
}
