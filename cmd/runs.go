package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docuvia/lexgate/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past validation runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := st.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("%-36s %-20s %9s %9s %7s %8s %s\n",
		"Run", "Timestamp", "Validated", "Fallbacks", "Issues", "Quality", "State")
	fmt.Println(strings.Repeat("-", 100))
	for _, r := range records {
		state := "ok"
		if r.Paused {
			state = "PAUSED"
		}
		fmt.Printf("%-36s %-20s %9d %9d %7d %7.1f%% %s\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"),
			r.TotalValidated, r.TotalFallbacks, r.TotalIssues, r.QualityRate, state)
	}
	return nil
}
