package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docuvia/lexgate/internal/corpus"
	"github.com/docuvia/lexgate/internal/parity"
	"github.com/docuvia/lexgate/internal/report"
)

var parityCmd = &cobra.Command{
	Use:   "parity",
	Short: "Cross-check structural parity between language variants",
	Long: `Compare English and Spanish template variants without scoring them.

Checks metadata presence, critical variables, variable sets, heading counts,
numbered section sequences, and alias counts. Findings are advisory: they are
reported but never pause publishing.`,
	RunE: runParity,
}

func init() {
	parityCmd.Flags().String("output", "", "write findings as JSON to this path instead of stdout")
	rootCmd.AddCommand(parityCmd)
}

func runParity(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	meta, err := corpus.LoadMetadata(cfg.Corpus.MetadataPath)
	if err != nil {
		return err
	}
	pairs, err := corpus.Load(cfg.Corpus.Dir)
	if err != nil {
		return err
	}

	issues := parity.NewChecker().Check(corpus.Summaries(pairs), meta)
	zap.L().Info("parity check complete",
		zap.Int("documents", len(pairs)),
		zap.Int("issues", len(issues)),
	)

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := report.WriteParityIssues(path, issues); err != nil {
			return err
		}
		fmt.Printf("Wrote %d parity findings to %s\n", len(issues), path)
		return nil
	}

	if len(issues) == 0 {
		fmt.Println("No parity issues found.")
		return nil
	}
	for _, is := range issues {
		fmt.Printf("%-24s [%s] %s\n", is.DocumentType, strings.Join(is.AffectedLanguages, ","), is.Message)
	}
	fmt.Printf("\n%d parity issue(s) across %d document(s)\n", len(issues), len(pairs))
	return nil
}
