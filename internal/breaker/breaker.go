// Package breaker implements the publishing circuit breaker: a two-state
// guard (running/paused) that halts a validation run after a configured
// number of consecutive low-confidence results. Pausing is terminal for the
// current run; the decision is persisted so the next run can see it, and
// clearing it is an explicit external action.
package breaker

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultTripThreshold is the number of consecutive sub-threshold results
// that pauses the pipeline.
const DefaultTripThreshold = 3

// AlertTypeTripped identifies the alert record written at trip time.
const AlertTypeTripped = "translation_circuit_breaker_tripped"

// Config controls breaker behavior.
type Config struct {
	// TripThreshold is the consecutive-failure count that pauses the
	// pipeline. Default: 3.
	TripThreshold int

	// ConfidenceThreshold is recorded in alerts for context; it does not
	// change breaker behavior.
	ConfidenceThreshold int

	// NowFunc allows test injection of time.
	NowFunc func() time.Time
}

// Checkpoint is the durable pause record read by subsequent runs.
type Checkpoint struct {
	Paused              bool       `json:"paused"`
	PausedAt            *time.Time `json:"paused_at,omitempty"`
	PauseReason         string     `json:"pause_reason,omitempty"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
}

// PausedSince renders the pause time for operator messages. A checkpoint
// restored from a hand-edited or truncated file can be paused with no
// timestamp.
func (c Checkpoint) PausedSince() string {
	if c.PausedAt == nil {
		return "unknown"
	}
	return c.PausedAt.Format(time.RFC3339)
}

// Alert is the immutable record emitted when the breaker trips.
type Alert struct {
	Timestamp           time.Time `json:"timestamp"`
	AlertType           string    `json:"alert_type"`
	DocumentType        string    `json:"document_type"`
	Confidence          int       `json:"confidence"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	Threshold           int       `json:"threshold"`
	ActionTaken         string    `json:"action_taken"`
	RequiresImmediate   bool      `json:"requires_immediate"`
}

// CheckpointStore is the narrow persistence port for the pause state.
type CheckpointStore interface {
	LoadCheckpoint(ctx context.Context) (*Checkpoint, error)
	SaveCheckpoint(ctx context.Context, cp Checkpoint) error
	ClearCheckpoint(ctx context.Context) error
}

// Breaker tracks consecutive sub-threshold confidence results. The counter is
// updated only by the run loop, but the mutex keeps watch mode safe when a
// handler and a status read overlap.
type Breaker struct {
	mu  sync.Mutex
	cfg Config

	consecutiveFailures int
	paused              bool
	pausedAt            time.Time
	reason              string
}

// New creates a breaker in the running state.
func New(cfg Config) *Breaker {
	if cfg.TripThreshold <= 0 {
		cfg.TripThreshold = DefaultTripThreshold
	}
	if cfg.NowFunc == nil {
		cfg.NowFunc = time.Now
	}
	return &Breaker{cfg: cfg}
}

// Record consumes one document's gate outcome. A passing result resets the
// failure counter. A failing result increments it and, when the counter
// reaches the trip threshold, pauses the breaker and returns the alert to be
// persisted. Once paused, further results are not recorded.
func (b *Breaker) Record(documentType string, confidence int, fallback bool) (tripped bool, alert *Alert) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.paused {
		return false, nil
	}

	if !fallback {
		b.consecutiveFailures = 0
		return false, nil
	}

	b.consecutiveFailures++
	if b.consecutiveFailures < b.cfg.TripThreshold {
		return false, nil
	}

	now := b.cfg.NowFunc().UTC()
	b.paused = true
	b.pausedAt = now
	b.reason = fmt.Sprintf(
		"%d consecutive translations below confidence threshold %d (last: %s at %d)",
		b.consecutiveFailures, b.cfg.ConfidenceThreshold, documentType, confidence)

	return true, &Alert{
		Timestamp:           now,
		AlertType:           AlertTypeTripped,
		DocumentType:        documentType,
		Confidence:          confidence,
		ConsecutiveFailures: b.consecutiveFailures,
		Threshold:           b.cfg.TripThreshold,
		ActionTaken:         "translation publishing paused",
		RequiresImmediate:   true,
	}
}

// Paused reports whether the breaker has tripped.
func (b *Breaker) Paused() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.paused
}

// Failures returns the current consecutive-failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consecutiveFailures
}

// Checkpoint snapshots the breaker state for persistence. PausedAt is nil
// while running, so paused==true always implies a trip.
func (b *Breaker) Checkpoint() Checkpoint {
	b.mu.Lock()
	defer b.mu.Unlock()

	cp := Checkpoint{
		Paused:              b.paused,
		PauseReason:         b.reason,
		ConsecutiveFailures: b.consecutiveFailures,
	}
	if b.paused {
		at := b.pausedAt
		cp.PausedAt = &at
	}
	return cp
}
