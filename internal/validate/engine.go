package validate

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/docuvia/lexgate/internal/breaker"
	"github.com/docuvia/lexgate/internal/corpus"
)

// ErrorType classifies entries in the run error log.
type ErrorType string

const (
	ErrMissingCounterpart ErrorType = "missing_counterpart_template"
	ErrLowConfidence      ErrorType = "low_confidence_warning"
	ErrBreakerTripped     ErrorType = "circuit_breaker_tripped"
)

// ErrorEntry is one line of the run error log.
type ErrorEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	DocumentID string    `json:"document_id"`
	ErrorType  ErrorType `json:"error_type"`
	Message    string    `json:"message"`
	Severity   string    `json:"severity"`
}

// Outcome is the in-memory result of one validation run. Results are keyed by
// document id and never mutated after creation.
type Outcome struct {
	Results        map[string]*ValidationResult
	Errors         []ErrorEntry
	TotalValidated int
	Tripped        bool
	Alert          *breaker.Alert
	Skipped        []string
}

// Engine drives the sequential batch run: documents are validated one at a
// time in corpus enumeration order, each result feeds the circuit breaker,
// and a trip aborts the remainder of the run.
type Engine struct {
	agg *Aggregator
	brk *breaker.Breaker
	now func() time.Time
}

// NewEngine builds a run engine around an aggregator and a breaker.
func NewEngine(agg *Aggregator, brk *breaker.Breaker) *Engine {
	return &Engine{agg: agg, brk: brk, now: time.Now}
}

// Run validates every pair in order. Documents without a target file are
// logged and excluded from scoring but still reported. The run stops at the
// first breaker trip; remaining documents are recorded as skipped.
func (e *Engine) Run(pairs []corpus.TemplatePair) *Outcome {
	log := zap.L().With(zap.Int("documents", len(pairs)))
	out := &Outcome{Results: make(map[string]*ValidationResult, len(pairs))}

	for i, pair := range pairs {
		if !pair.HasTarget() {
			out.Errors = append(out.Errors, ErrorEntry{
				Timestamp:  e.now().UTC(),
				DocumentID: pair.DocumentID,
				ErrorType:  ErrMissingCounterpart,
				Message:    "target-language template is missing",
				Severity:   "error",
			})
			log.Error("validate: missing counterpart template",
				zap.String("document_id", pair.DocumentID))
			continue
		}

		res := e.agg.Validate(pair)
		out.Results[pair.DocumentID] = res
		out.TotalValidated++

		if res.ShouldFallback {
			out.Errors = append(out.Errors, ErrorEntry{
				Timestamp:  e.now().UTC(),
				DocumentID: pair.DocumentID,
				ErrorType:  ErrLowConfidence,
				Message: fmt.Sprintf("final confidence %d below threshold %d",
					res.FinalConfidence, e.agg.Threshold()),
				Severity: "warning",
			})
			log.Warn("validate: low confidence",
				zap.String("document_id", pair.DocumentID),
				zap.Int("confidence", res.FinalConfidence),
			)
		}

		tripped, alert := e.brk.Record(pair.DocumentID, res.FinalConfidence, res.ShouldFallback)
		if tripped {
			out.Tripped = true
			out.Alert = alert
			out.Errors = append(out.Errors, ErrorEntry{
				Timestamp:  e.now().UTC(),
				DocumentID: pair.DocumentID,
				ErrorType:  ErrBreakerTripped,
				Message:    alert.ActionTaken,
				Severity:   "error",
			})
			for _, rest := range pairs[i+1:] {
				out.Skipped = append(out.Skipped, rest.DocumentID)
			}
			log.Error("validate: circuit breaker tripped, halting run",
				zap.String("document_id", pair.DocumentID),
				zap.Int("consecutive_failures", alert.ConsecutiveFailures),
				zap.Int("skipped", len(out.Skipped)),
			)
			break
		}
	}

	return out
}

// ValidateOne scores a single pair and feeds the breaker, for watch mode.
func (e *Engine) ValidateOne(pair corpus.TemplatePair) (*ValidationResult, bool, *breaker.Alert) {
	res := e.agg.Validate(pair)
	tripped, alert := e.brk.Record(pair.DocumentID, res.FinalConfidence, res.ShouldFallback)
	return res, tripped, alert
}
