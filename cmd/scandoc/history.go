package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scandoc/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past conversions and cumulative stats",
	Long: `History lists recent conversions from the local run ledger along with
the cumulative page count and the estimated energy saved by not printing
and scanning those pages.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ledger, err := history.Open(history.DefaultPath())
	if err != nil {
		return err
	}
	defer ledger.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := ledger.Recent(limit)
	if err != nil {
		return err
	}
	stats, err := ledger.Summary()
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Entries []history.Entry `json:"entries"`
			Stats   history.Stats   `json:"stats"`
		}{entries, stats})
	}

	if len(entries) == 0 {
		fmt.Println("No conversions recorded yet.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-40s  %-6s  %s\n", "When", "Input", "Pages", "Status")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, e := range entries {
		input := e.Input
		if len(input) > 40 {
			input = input[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-40s  %-6d  %s\n",
			e.RunAt.Local().Format("2006-01-02 15:04:05"), input, e.Pages, e.Status)
	}

	fmt.Fprintf(os.Stdout, "\n%d run(s), %d page(s) converted, ~%s of energy saved\n",
		stats.Runs, stats.Pages, history.EnergySaved(stats.Pages))
	return nil
}
