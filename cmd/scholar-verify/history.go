// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-verify/internal/report"
	"github.com/pdiddy/scholar-verify/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past verification runs",
	Long: `History lists verification runs recorded in the history database, newest
first, with their result counts. Use --run to export one run's results as CSV.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("store", store.DefaultPath, "history database path")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list (0 for all)")
	historyCmd.Flags().String("run", "", "print the results of one run as CSV")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd, map[string]string{keyStorePath: "store"}); err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetString("run")

	path := batchConfig(v).StorePath
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	if runID != "" {
		results, err := st.Results(cmd.Context(), runID)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("no results recorded for run %s", runID)
		}
		return report.WriteCSV(out, results)
	}

	runs, err := st.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}
	fmt.Fprintln(out, report.RunsTable(runs))
	return nil
}
