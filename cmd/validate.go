package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/docuvia/lexgate/internal/breaker"
	"github.com/docuvia/lexgate/internal/corpus"
	"github.com/docuvia/lexgate/internal/lexicon"
	"github.com/docuvia/lexgate/internal/parity"
	"github.com/docuvia/lexgate/internal/report"
	"github.com/docuvia/lexgate/internal/store"
	"github.com/docuvia/lexgate/internal/validate"
	"github.com/docuvia/lexgate/internal/weights"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the translation quality gate over the corpus",
	Long: `Validate every bilingual template pair in the corpus.

Each document gets a 0-100 confidence from text similarity, legal terminology
coverage, and structural checks, weighted by the document type's business
impact. Three consecutive results below the confidence threshold trip the
circuit breaker: the run halts, the pause is persisted, and an alert record
is written. The parity checker runs independently and its findings never trip
the breaker.

Examples:
  # Validate with defaults
  lexgate validate

  # Stricter threshold, Mexico-specific terminology
  lexgate validate --threshold 80 --region mx

  # Clear a previous pause and run again
  lexgate validate --force`,
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.Int("threshold", 0, "confidence threshold (overrides config)")
	f.Int("trip-threshold", 0, "consecutive failures before pausing (overrides config)")
	f.String("region", "", "region code for terminology overrides (e.g. mx)")
	f.Bool("force", false, "clear a persisted pause state before running")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		return err
	}
	applyGateOverrides(cmd)

	log := zap.L().With(zap.String("command", "validate"))

	deps, err := loadGateDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.close()

	force, _ := cmd.Flags().GetBool("force")
	if err := checkPausedState(ctx, deps, force); err != nil {
		return err
	}

	pairs, err := corpus.Load(cfg.Corpus.Dir)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		fmt.Println("No templates found in corpus.")
		return nil
	}

	region := regionFlag(cmd)
	brk := breaker.New(breaker.Config{
		TripThreshold:       cfg.Gate.TripThreshold,
		ConfidenceThreshold: cfg.Gate.ConfidenceThreshold,
	})
	agg := validate.NewAggregator(deps.lex, deps.tbl, cfg.Gate.ConfidenceThreshold)
	eng := validate.NewEngine(agg, brk)

	for i := range pairs {
		pairs[i].Region = region
	}

	log.Info("starting validation run",
		zap.Int("documents", len(pairs)),
		zap.Int("confidence_threshold", cfg.Gate.ConfidenceThreshold),
		zap.Int("trip_threshold", cfg.Gate.TripThreshold),
	)

	out := eng.Run(pairs)
	parityIssues := parity.NewChecker().Check(corpus.Summaries(pairs), deps.meta)

	rep := report.Aggregate(uuid.New().String(), out, parityIssues, report.Thresholds{
		Confidence: cfg.Gate.ConfidenceThreshold,
		Trip:       cfg.Gate.TripThreshold,
	}, time.Now())

	persistRun(ctx, deps, rep, brk, out)

	fmt.Print(report.FormatSummary(rep))
	return nil
}

// applyGateOverrides merges CLI flags into the loaded config.
func applyGateOverrides(cmd *cobra.Command) {
	if v, _ := cmd.Flags().GetInt("threshold"); v > 0 {
		cfg.Gate.ConfidenceThreshold = v
	}
	if v, _ := cmd.Flags().GetInt("trip-threshold"); v > 0 {
		cfg.Gate.TripThreshold = v
	}
}

func regionFlag(cmd *cobra.Command) string {
	if v, _ := cmd.Flags().GetString("region"); v != "" {
		return v
	}
	return cfg.Gate.Region
}

// gateDeps bundles the read-only tables and the persistence handles a run
// needs. The sqlite store may be nil when opening failed; persistence then
// degrades to the JSON checkpoint mirror.
type gateDeps struct {
	lex    lexicon.Lexicon
	tbl    weights.Table
	meta   map[string]corpus.MetadataEntry
	st     store.Store
	fileCP *breaker.FileStore
}

func (d *gateDeps) close() {
	if d.st != nil {
		_ = d.st.Close()
	}
}

func loadGateDeps(ctx context.Context) (*gateDeps, error) {
	lex, err := lexicon.Load(cfg.Gate.LexiconPath)
	if err != nil {
		return nil, err
	}
	tbl, err := weights.Load(cfg.Gate.WeightsPath)
	if err != nil {
		return nil, err
	}
	if err := weights.Validate(tbl); err != nil {
		return nil, err
	}
	meta, err := corpus.LoadMetadata(cfg.Corpus.MetadataPath)
	if err != nil {
		return nil, err
	}

	deps := &gateDeps{
		lex:    lex,
		tbl:    tbl,
		meta:   meta,
		fileCP: breaker.NewFileStore(cfg.Output.CheckpointPath),
	}

	// A broken history store must not block validation; results are still
	// returned in memory and as files.
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		zap.L().Error("validate: open run-history store failed", zap.Error(err))
		return deps, nil
	}
	if err := st.Migrate(ctx); err != nil {
		zap.L().Error("validate: migrate run-history store failed", zap.Error(err))
		_ = st.Close()
		return deps, nil
	}
	deps.st = st
	return deps, nil
}

// checkPausedState refuses to run while a previous trip is still persisted,
// unless force clears it. The store is authoritative; the JSON mirror covers
// runs where the store was unavailable.
func checkPausedState(ctx context.Context, deps *gateDeps, force bool) error {
	cp := loadCheckpoint(ctx, deps)
	if cp == nil || !cp.Paused {
		return nil
	}

	if !force {
		return eris.Errorf(
			"publishing is paused since %s (%s); re-run with --force to clear",
			cp.PausedSince(), cp.PauseReason)
	}

	if deps.st != nil {
		if err := deps.st.ClearCheckpoint(ctx); err != nil {
			return eris.Wrap(err, "validate: clear checkpoint")
		}
	}
	if err := deps.fileCP.ClearCheckpoint(ctx); err != nil {
		return eris.Wrap(err, "validate: clear checkpoint mirror")
	}
	zap.L().Info("validate: cleared paused state", zap.Bool("was_paused", true))
	return nil
}

func loadCheckpoint(ctx context.Context, deps *gateDeps) *breaker.Checkpoint {
	if deps.st != nil {
		cp, err := deps.st.LoadCheckpoint(ctx)
		if err != nil {
			zap.L().Error("validate: load checkpoint failed", zap.Error(err))
		} else if cp != nil {
			return cp
		}
	}
	cp, err := deps.fileCP.LoadCheckpoint(ctx)
	if err != nil {
		zap.L().Error("validate: load checkpoint mirror failed", zap.Error(err))
		return nil
	}
	return cp
}

// persistRun writes every output, logging failures instead of aborting: the
// in-memory report has already been built and is still shown to the caller.
// Report, error log, and run history are independent writes and run
// concurrently; trip-state writes happen first so a crash mid-persist can
// lose a report but never a pause.
func persistRun(ctx context.Context, deps *gateDeps, rep *report.Report, brk *breaker.Breaker, out *validate.Outcome) {
	log := zap.L()

	if out.Tripped {
		cp := brk.Checkpoint()
		if deps.st != nil {
			if err := deps.st.SaveCheckpoint(ctx, cp); err != nil {
				log.Error("validate: persist checkpoint failed", zap.Error(err))
			}
		}
		if err := deps.fileCP.SaveCheckpoint(ctx, cp); err != nil {
			log.Error("validate: persist checkpoint mirror failed", zap.Error(err))
		}
		if out.Alert != nil {
			if path, err := report.WriteAlert(cfg.Output.AlertDir, *out.Alert); err != nil {
				log.Error("validate: write alert failed", zap.Error(err))
			} else {
				log.Warn("validate: alert written",
					zap.String("path", path),
					zap.String("document_type", out.Alert.DocumentType),
				)
			}
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := report.WriteReport(cfg.Output.ReportPath, rep); err != nil {
			log.Error("validate: write report failed", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		if err := report.WriteErrorLog(cfg.Output.ErrorLogPath, rep.Errors); err != nil {
			log.Error("validate: write error log failed", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		if deps.st != nil {
			if err := deps.st.SaveRun(gCtx, rep); err != nil {
				log.Error("validate: save run history failed", zap.Error(err))
			}
		}
		return nil
	})
	_ = g.Wait()
}
