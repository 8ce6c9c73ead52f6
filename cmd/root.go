package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docuvia/lexgate/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lexgate",
	Short: "Translation quality gate for bilingual legal templates",
	Long:  "Scores Spanish translations of legal document templates against their English sources, cross-checks structural parity between language variants, and pauses publishing after consecutive low-confidence results.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
