package main

import (
	"context"
	"log/slog"

	"wbcountries-backend/internal/components/telemetry"
	"wbcountries-backend/lib/serviceutil"
	libtelemetry "wbcountries-backend/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool, configPath string) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	tel, err := libtelemetry.SetupFromFile(ctx, "countries-server", configPath)
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	}()
	libtelemetry.InstrumentPerfStats(ctx)
}
