package countries

import (
	"context"
	"errors"
	"sync"
	"testing"

	"wbcountries-backend/internal/components/telemetry"
	"wbcountries-backend/internal/scrapers/worldbank"

	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mutex   sync.Mutex
	calls   []string
	results map[string]worldbank.Indicator
	errs    map[string]error
}

func (f *fakeFetcher) FetchIndicator(_ context.Context, countryCode, indicatorCode string) (worldbank.Indicator, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.calls = append(f.calls, countryCode+"/"+indicatorCode)
	if err, ok := f.errs[indicatorCode]; ok {
		return worldbank.Indicator{}, err
	}
	if result, ok := f.results[indicatorCode]; ok {
		return result, nil
	}
	return worldbank.NoData(indicatorCode), nil
}

func (f *fakeFetcher) callCount() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return len(f.calls)
}

func catalogCodes() []string {
	var codes []string
	for _, section := range Catalog {
		for _, indicator := range section.Indicators {
			codes = append(codes, indicator.Code)
		}
	}
	return codes
}

func TestCatalog(t *testing.T) {
	var names []string
	total := 0
	for _, section := range Catalog {
		names = append(names, section.Name)
		require.GreaterOrEqual(t, len(section.Indicators), 1)
		require.LessOrEqual(t, len(section.Indicators), 3)
		total += len(section.Indicators)
	}
	require.Equal(t, []string{"Social", "Economic", "Environment", "Institutions"}, names)
	require.Equal(t, 7, total)
}

func TestBuildProfile(t *testing.T) {
	population := 68170228.0
	gdp := 3.03e12
	fetcher := &fakeFetcher{
		results: map[string]worldbank.Indicator{
			"SP.POP.TOTL":    {Code: "SP.POP.TOTL", Value: &population, Year: "2023"},
			"NY.GDP.MKTP.CD": {Code: "NY.GDP.MKTP.CD", Value: &gdp, Year: "2023"},
		},
		errs: map[string]error{
			"SI.POV.DDAY":    &worldbank.FetchError{URL: "x", StatusCode: 502},
			"IT.NET.USER.ZS": errors.New("connection reset"),
		},
	}
	tel := &telemetry.RecordingAPI{}
	builder := NewProfileBuilder(fetcher, tel)

	profile := builder.Build(context.Background(), "FRA")

	expectedCalls := []string{}
	for _, code := range catalogCodes() {
		expectedCalls = append(expectedCalls, "FRA/"+code)
	}
	require.Equal(t, expectedCalls, fetcher.calls)

	require.Len(t, profile, 4)
	social, ok := profile.Section("Social")
	require.True(t, ok)
	require.Equal(t, []IndicatorResult{
		{Indicator: "Population, total", Value: &population, Year: "2023"},
		Placeholder("Life expectancy at birth, total (years)"),
		Placeholder("Poverty headcount ratio at $2.15 a day (2017 PPP)"),
	}, social)

	economic, _ := profile.Section("Economic")
	require.Equal(t, []IndicatorResult{
		{Indicator: "GDP (current US$)", Value: &gdp, Year: "2023"},
		Placeholder("GDP per capita (current US$)"),
	}, economic)

	institutions, _ := profile.Section("Institutions")
	require.Equal(t, []IndicatorResult{
		{Indicator: "Individuals using the Internet (% of population)", Value: nil, Year: ""},
	}, institutions)

	require.Len(t, tel.Reports("warning"), 2)
}

func TestBuildProfileAllFailing(t *testing.T) {
	errs := map[string]error{}
	for _, code := range catalogCodes() {
		errs[code] = errors.New("unreachable")
	}
	builder := NewProfileBuilder(&fakeFetcher{errs: errs}, &telemetry.RecordingAPI{})

	profile := builder.Build(context.Background(), "FRA")
	for i, section := range Catalog {
		require.Equal(t, section.Name, profile[i].Name)
		require.Len(t, profile[i].Results, len(section.Indicators))
		for j, indicator := range section.Indicators {
			require.Equal(t, Placeholder(indicator.Label), profile[i].Results[j])
		}
	}
}

func TestBuildProfileRequiresCode(t *testing.T) {
	fetcher := &fakeFetcher{}
	builder := NewProfileBuilder(fetcher, &telemetry.RecordingAPI{})

	require.Panics(t, func() {
		builder.Build(context.Background(), "")
	})
	require.Equal(t, 0, fetcher.callCount())
}
