package commands

import (
	"fmt"
	"strconv"

	"wbcountries-backend/internal/components/telemetry"
	"wbcountries-backend/internal/countries"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile <country name>",
	Short: "Builds and prints the indicator profile of a country, matched case-insensitively by name.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		loaded, _, err := countries.Load(cmd.Context(), client)
		if err != nil {
			return err
		}

		store := countries.NewStore(loaded, countries.NewProfileBuilder(client, telemetry.SlogAPI{}))
		country, err := store.Details(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n%s\n", country.Name, country.ID, country.Link)
		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Section", "Indicator", "Value", "Year"})
		for _, section := range country.Profile {
			for _, result := range section.Results {
				t.AppendRow(table.Row{section.Name, result.Indicator, formatValue(result), result.Year})
			}
			t.AppendSeparator()
		}
		t.Render()
		return nil
	},
}

func formatValue(result countries.IndicatorResult) string {
	if result.Value == nil {
		return countries.NoDataValue
	}
	return strconv.FormatFloat(*result.Value, 'f', -1, 64)
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
