package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docuvia/lexgate/internal/breaker"
	"github.com/docuvia/lexgate/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the circuit breaker state",
	Long: `Show whether publishing is paused and why.

A pause is only ever cleared by an operator, through --clear here or through
'validate --force'; runs never resume on their own.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().Bool("clear", false, "clear the persisted pause state")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	fileCP := breaker.NewFileStore(cfg.Output.CheckpointPath)

	var st store.Store
	if sq, err := store.NewSQLite(cfg.Store.Path); err != nil {
		zap.L().Warn("status: open run-history store failed", zap.Error(err))
	} else if err := sq.Migrate(ctx); err != nil {
		zap.L().Warn("status: migrate run-history store failed", zap.Error(err))
		_ = sq.Close()
	} else {
		defer sq.Close()
		st = sq
	}

	if clear, _ := cmd.Flags().GetBool("clear"); clear {
		if st != nil {
			if err := st.ClearCheckpoint(ctx); err != nil {
				return err
			}
		}
		if err := fileCP.ClearCheckpoint(ctx); err != nil {
			return err
		}
		fmt.Println("Pause state cleared.")
		return nil
	}

	cp := statusCheckpoint(ctx, st, fileCP)
	if cp == nil || !cp.Paused {
		failures := 0
		if cp != nil {
			failures = cp.ConsecutiveFailures
		}
		fmt.Printf("Status: ok (consecutive failures: %d)\n", failures)
		return nil
	}

	fmt.Println("Status: PAUSED")
	fmt.Printf("Since:  %s\n", cp.PausedSince())
	fmt.Printf("Reason: %s\n", cp.PauseReason)
	fmt.Println("\nRun 'lexgate status --clear' or 'lexgate validate --force' to resume.")
	return nil
}

func statusCheckpoint(ctx context.Context, st store.Store, fileCP *breaker.FileStore) *breaker.Checkpoint {
	if st != nil {
		cp, err := st.LoadCheckpoint(ctx)
		if err != nil {
			zap.L().Warn("status: load checkpoint failed", zap.Error(err))
		} else if cp != nil {
			return cp
		}
	}
	cp, err := fileCP.LoadCheckpoint(ctx)
	if err != nil {
		zap.L().Warn("status: load checkpoint mirror failed", zap.Error(err))
		return nil
	}
	return cp
}
