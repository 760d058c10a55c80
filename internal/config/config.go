package config

import (
	"fmt"
	"time"

	"wbcountries-backend/internal/scrapers/worldbank"
	"wbcountries-backend/lib/configutil"
	"wbcountries-backend/lib/restyutil"
)

type Config struct {
	Port           int    `json:"port"`
	SiteUrl        string `json:"site_url"`
	ApiUrl         string `json:"api_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	// DisableCloudflareBypass sends listing requests with the plain transport.
	DisableCloudflareBypass bool `json:"disable_cloudflare_bypass"`
	// TelemetryConfig is the path of the otlp exporter config, telemetry is
	// disabled when the file does not exist.
	TelemetryConfig string `json:"telemetry_config"`
	// DumpHttpDir, when set, receives a text file per upstream http exchange.
	DumpHttpDir string `json:"dump_http_dir"`
}

func Defaults() Config {
	return Config{
		Port:            8000,
		SiteUrl:         worldbank.DefaultSiteUrl,
		ApiUrl:          worldbank.DefaultApiUrl,
		TimeoutSeconds:  30,
		TelemetryConfig: "telemetry.json5",
	}
}

// Read reads the config at `path` (and its .local override), filling in
// defaults for anything left unset.
func Read(path string) (Config, error) {
	return configutil.ReadConfigWithDefaults(path, Defaults())
}

func (c Config) ClientOptions() (worldbank.ClientOptions, error) {
	opts := worldbank.ClientOptions{
		SiteUrl:          c.SiteUrl,
		ApiUrl:           c.ApiUrl,
		Timeout:          time.Duration(c.TimeoutSeconds) * time.Second,
		BypassCloudflare: !c.DisableCloudflareBypass,
	}
	if c.DumpHttpDir != "" {
		output, err := restyutil.NewDirOutput(c.DumpHttpDir)
		if err != nil {
			return worldbank.ClientOptions{}, fmt.Errorf("prepare http dump dir: %w", err)
		}
		opts.Dump = output
	}
	return opts, nil
}
