package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"wbcountries-backend/internal/components/telemetry"
	"wbcountries-backend/internal/config"
	"wbcountries-backend/internal/scrapers/worldbank"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	verbose     bool
	dumpHttpDir string
)

var rootCmd = &cobra.Command{
	Use:   "countries-cli",
	Short: "countries-cli scrapes the World Bank country list and inspects enrichment and profiles.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "Path to the json5 config file.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging.")
	rootCmd.PersistentFlags().StringVar(&dumpHttpDir, "dump-http", "", "Write every upstream http exchange to this directory.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient() (worldbank.Client, error) {
	cfg, err := config.Read(configPath)
	if err != nil {
		return worldbank.Client{}, fmt.Errorf("read config: %w", err)
	}
	if dumpHttpDir != "" {
		cfg.DumpHttpDir = dumpHttpDir
	}
	opts, err := cfg.ClientOptions()
	if err != nil {
		return worldbank.Client{}, err
	}
	return worldbank.NewClient(opts, telemetry.SlogAPI{})
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}
