package main

import (
	"flag"

	"wbcountries-backend/internal/api"
	"wbcountries-backend/internal/components/telemetry"
	"wbcountries-backend/internal/config"
	"wbcountries-backend/internal/countries"
	"wbcountries-backend/internal/scrapers/worldbank"
	"wbcountries-backend/lib/serviceutil"
)

const (
	report_startup_matched           = "startup.matched-countries"
	report_startup_unmatched         = "startup.unmatched-countries"
	report_startup_unmatched_country = "startup.unmatched-country"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	configPath := flag.String("config", "config.json5", "Path to the json5 config file.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	cfg, err := config.Read(*configPath)
	if err != nil {
		serviceutil.Fatal("read config", err)
	}

	InitTelemetry(ctx, *verbose, cfg.TelemetryConfig)
	tel := telemetry.NewScopedAPI("server", telemetry.SlogAPI{})

	opts, err := cfg.ClientOptions()
	if err != nil {
		serviceutil.Fatal("init worldbank client", err)
	}
	client, err := worldbank.NewClient(opts, telemetry.SlogAPI{})
	if err != nil {
		serviceutil.Fatal("init worldbank client", err)
	}

	tel.ReportDebug("fetching countries at startup", cfg.SiteUrl, cfg.ApiUrl)
	loaded, dir, err := countries.Load(ctx, client)
	if err != nil {
		serviceutil.Fatal("load countries", err)
	}

	store := countries.NewStore(loaded, countries.NewProfileBuilder(client, telemetry.SlogAPI{}))
	matched, unmatched := store.Counts()
	tel.ReportCount(report_startup_matched, int64(matched))
	tel.ReportCount(report_startup_unmatched, int64(unmatched))
	for _, s := range countries.SuggestMatches(loaded, dir.Names) {
		tel.ReportWarning(report_startup_unmatched_country, s.Name, s.Closest, s.Similarity)
	}

	handler := api.NewHandler(store, telemetry.SlogAPI{})
	err = serviceutil.StartHttpServer(ctx, cfg.Port, api.NewRouter(handler))
	if err != nil {
		serviceutil.Fatal("serve http", err)
	}
}
