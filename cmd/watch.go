package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docuvia/lexgate/internal/breaker"
	"github.com/docuvia/lexgate/internal/corpus"
	"github.com/docuvia/lexgate/internal/report"
	"github.com/docuvia/lexgate/internal/validate"
	"github.com/docuvia/lexgate/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate templates as their files change",
	Long: `Watch the corpus language directories and re-validate a document pair
whenever one of its files is written.

Events are debounced and handled strictly one at a time, so results and
breaker state always reflect a single in-flight validation. A saved pair whose
content is identical to the last validated version is skipped. When the
circuit breaker trips, watching stops and the pause is persisted.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("region", "", "region code for terminology overrides (e.g. mx)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		return err
	}

	deps, err := loadGateDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.close()

	if err := checkPausedState(ctx, deps, false); err != nil {
		return err
	}

	region := regionFlag(cmd)
	brk := breaker.New(breaker.Config{
		TripThreshold:       cfg.Gate.TripThreshold,
		ConfidenceThreshold: cfg.Gate.ConfidenceThreshold,
	})
	agg := validate.NewAggregator(deps.lex, deps.tbl, cfg.Gate.ConfidenceThreshold)
	eng := validate.NewEngine(agg, brk)

	w, err := watch.New(cfg.Corpus.Dir, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond)
	if err != nil {
		return err
	}
	defer w.Close()

	log := zap.L().With(zap.String("command", "watch"))
	log.Info("watching corpus",
		zap.String("dir", cfg.Corpus.Dir),
		zap.Int("debounce_ms", cfg.Watch.DebounceMS),
	)
	fmt.Printf("Watching %s (ctrl-c to stop)\n", cfg.Corpus.Dir)

	// seen holds the last validated source+target per document so a save that
	// does not change content is not re-scored.
	seen := watch.NewContentTracker()
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	err = w.Run(watchCtx, func(_ context.Context, id string) {
		pair, err := corpus.LoadPair(cfg.Corpus.Dir, id)
		if err != nil {
			log.Error("load changed pair failed", zap.String("document_id", id), zap.Error(err))
			return
		}
		pair.Region = region

		content := pair.SourceText + "\x00" + pair.TargetText
		prev, changed := seen.Update(id, content)
		if !changed {
			log.Debug("content unchanged, skipping", zap.String("document_id", id))
			return
		}
		if prev != "" {
			log.Debug("content changed",
				zap.String("document_id", id),
				zap.Int("similarity_to_previous", validate.Similarity(prev, content)),
			)
		}

		if !pair.HasTarget() {
			log.Warn("missing counterpart template",
				zap.String("document_id", id),
				zap.String("missing_language", corpus.LangSpanish),
			)
			return
		}

		res, tripped, alert := eng.ValidateOne(*pair)
		log.Info("re-validated",
			zap.String("document_id", id),
			zap.Int("confidence", res.FinalConfidence),
			zap.Bool("fallback", res.ShouldFallback),
		)
		fmt.Printf("%s: confidence %d (fallback=%v)\n", id, res.FinalConfidence, res.ShouldFallback)

		if tripped {
			persistTrip(ctx, deps, brk, alert)
			fmt.Println("Circuit breaker tripped; publishing paused. Stopping watch.")
			cancel()
		}
	})
	if err != nil && watchCtx.Err() == nil {
		return err
	}
	return nil
}

func persistTrip(ctx context.Context, deps *gateDeps, brk *breaker.Breaker, alert *breaker.Alert) {
	log := zap.L()
	cp := brk.Checkpoint()
	if deps.st != nil {
		if err := deps.st.SaveCheckpoint(ctx, cp); err != nil {
			log.Error("watch: persist checkpoint failed", zap.Error(err))
		}
	}
	if err := deps.fileCP.SaveCheckpoint(ctx, cp); err != nil {
		log.Error("watch: persist checkpoint mirror failed", zap.Error(err))
	}
	if alert != nil {
		if path, err := report.WriteAlert(cfg.Output.AlertDir, *alert); err != nil {
			log.Error("watch: write alert failed", zap.Error(err))
		} else {
			log.Warn("watch: alert written", zap.String("path", path))
		}
	}
}
