package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := &RecordingAPI{}
	scoped := NewScopedAPI("worldbank", rec)

	scoped.ReportBroken("client.country-codes", "status 500")
	scoped.ReportWarning("client.fetch-indicator")
	scoped.ReportDebug("parsed anchors", 12)
	scoped.ReportCount("countries", 217)

	broken := rec.Reports("broken")
	require.Len(t, broken, 1)
	require.Equal(t, "worldbank: client.country-codes", broken[0].ID)
	require.Equal(t, []any{"status 500"}, broken[0].Params)

	require.Equal(t, "worldbank: client.fetch-indicator", rec.Reports("warning")[0].ID)
	require.Equal(t, "worldbank: parsed anchors", rec.Reports("debug")[0].ID)

	counts := rec.Reports("count")
	require.Len(t, counts, 1)
	require.Equal(t, []any{int64(217)}, counts[0].Params)
}
