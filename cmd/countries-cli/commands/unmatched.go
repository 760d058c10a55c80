package commands

import (
	"fmt"

	"wbcountries-backend/internal/countries"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var minSimilarity float64

var unmatchedCmd = &cobra.Command{
	Use:   "unmatched [--min <similarity>]",
	Short: "Lists scraped countries without a code and the closest directory name for each.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		loaded, dir, err := countries.Load(cmd.Context(), client)
		if err != nil {
			return err
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Scraped name", "Closest directory name", "Similarity"})
		for _, s := range countries.SuggestMatches(loaded, dir.Names) {
			if s.Similarity < minSimilarity {
				t.AppendRow(table.Row{s.Name, "-", "-"})
				continue
			}
			t.AppendRow(table.Row{s.Name, s.Closest, fmt.Sprintf("%.3f", s.Similarity)})
		}
		t.Render()
		return nil
	},
}

func init() {
	unmatchedCmd.Flags().Float64Var(&minSimilarity, "min", 0.8, "Hide suggestions below this Jaro-Winkler similarity.")
	rootCmd.AddCommand(unmatchedCmd)
}
