package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"crossbench/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved runs and compare the latest two",
	Long: `Lists the runs saved with 'run --save' and, when at least two exist,
shows how each implementation's score moved between the previous and the
latest run, scenario by scenario.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := newStoreFunc(viper.GetString("history_file"))
	if err != nil {
		return err
	}
	records, err := store.LoadAll()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved runs.")
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  (%d scenarios)\n", rec.Timestamp.Format("2006-01-02 15:04:05"), len(rec.Scenarios))
	}

	if len(records) < 2 {
		return nil
	}
	prev, curr := records[len(records)-2], records[len(records)-1]
	comparisons := history.Compare(prev, curr)
	if len(comparisons) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nNothing comparable between the latest two runs.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "\nSCENARIO\tIMPLEMENTATION\tPREV\tCURR\tDIFF %")
	for _, c := range comparisons {
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%.3f\t%+.2f%%\n", c.Scenario, c.Label, c.Prev, c.Curr, c.DeltaPct)
	}
	return w.Flush()
}
