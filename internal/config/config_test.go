package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadDefaults(t *testing.T) {
	cfg, err := Read(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)

	opts, err := cfg.ClientOptions()
	require.NoError(t, err)
	require.Equal(t, "https://data.worldbank.org", opts.SiteUrl)
	require.Equal(t, "https://api.worldbank.org/v2", opts.ApiUrl)
	require.Equal(t, 30*time.Second, opts.Timeout)
	require.True(t, opts.BypassCloudflare)
	require.Nil(t, opts.Dump)
}

func TestReadOverrides(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		port: 9090,
		api_url: "http://localhost:4000/v2",
		disable_cloudflare_bypass: true,
	}`), 0600)
	require.NoError(t, err)

	cfg, err := Read(filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "http://localhost:4000/v2", cfg.ApiUrl)
	require.Equal(t, "https://data.worldbank.org", cfg.SiteUrl)
	require.Equal(t, 30, cfg.TimeoutSeconds)
	opts, err := cfg.ClientOptions()
	require.NoError(t, err)
	require.False(t, opts.BypassCloudflare)
}

func TestDumpHttpDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dumps")
	cfg := Defaults()
	cfg.DumpHttpDir = dir

	opts, err := cfg.ClientOptions()
	require.NoError(t, err)
	require.NotNil(t, opts.Dump)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
