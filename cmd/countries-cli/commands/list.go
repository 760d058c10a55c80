package commands

import (
	"fmt"

	"wbcountries-backend/internal/countries"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists every scraped country along with the code it was enriched with.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		loaded, _, err := countries.Load(cmd.Context(), client)
		if err != nil {
			return err
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Code", "Name", "Link"})
		for _, c := range loaded {
			code := c.ID
			if code == "" {
				code = "-"
			}
			t.AppendRow(table.Row{code, c.Name, c.Link})
		}
		t.AppendFooter(table.Row{"", fmt.Sprintf("%d countries", len(loaded)), ""})
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
