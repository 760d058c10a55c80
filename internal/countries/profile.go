package countries

import (
	"context"

	"wbcountries-backend/internal/assert"
	"wbcountries-backend/internal/components/telemetry"
	"wbcountries-backend/internal/scrapers/worldbank"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("wbcountries.internal.countries")
	meter  = otel.Meter("wbcountries.internal.countries")
)

const (
	report_profile_builder_fetch = "profile-builder.fetch"
)

type CatalogIndicator struct {
	Code  string
	Label string
}

type CatalogSection struct {
	Name       string
	Indicators []CatalogIndicator
}

// Catalog is the fixed set of indicators every profile is built from.
var Catalog = []CatalogSection{
	{
		Name: "Social",
		Indicators: []CatalogIndicator{
			{Code: "SP.POP.TOTL", Label: "Population, total"},
			{Code: "SP.DYN.LE00.IN", Label: "Life expectancy at birth, total (years)"},
			{Code: "SI.POV.DDAY", Label: "Poverty headcount ratio at $2.15 a day (2017 PPP)"},
		},
	},
	{
		Name: "Economic",
		Indicators: []CatalogIndicator{
			{Code: "NY.GDP.MKTP.CD", Label: "GDP (current US$)"},
			{Code: "NY.GDP.PCAP.CD", Label: "GDP per capita (current US$)"},
		},
	},
	{
		Name: "Environment",
		Indicators: []CatalogIndicator{
			{Code: "EG.ELC.ACCS.ZS", Label: "Access to electricity (% of population)"},
		},
	},
	{
		Name: "Institutions",
		Indicators: []CatalogIndicator{
			{Code: "IT.NET.USER.ZS", Label: "Individuals using the Internet (% of population)"},
		},
	},
}

type IndicatorFetcher interface {
	FetchIndicator(ctx context.Context, countryCode, indicatorCode string) (worldbank.Indicator, error)
}

// ProfileBuilder fetches every catalog indicator for a country.
type ProfileBuilder struct {
	fetcher IndicatorFetcher
	tel     telemetry.API

	builds    metric.Int64Counter
	fallbacks metric.Int64Counter
}

func NewProfileBuilder(fetcher IndicatorFetcher, tel telemetry.API) ProfileBuilder {
	assert.NotNil(fetcher, "fetcher")
	assert.NotNil(tel, "tel")

	builds, _ := meter.Int64Counter(
		"countries.profile_builds",
		metric.WithDescription("Number of profiles built from the indicator API."),
	)
	fallbacks, _ := meter.Int64Counter(
		"countries.indicator_fallbacks",
		metric.WithDescription("Number of indicators replaced with a placeholder after a failed fetch."),
	)

	return ProfileBuilder{
		fetcher:   fetcher,
		tel:       telemetry.NewScopedAPI("countries", tel),
		builds:    builds,
		fallbacks: fallbacks,
	}
}

// Build fetches the catalog for `countryCode` one indicator at a time. A
// failed fetch never fails the build, the indicator is replaced with a
// placeholder instead. The caller must make sure the code is not empty.
func (b ProfileBuilder) Build(ctx context.Context, countryCode string) Profile {
	assert.NotEmptyStr(countryCode, "countryCode")

	ctx, span := tracer.Start(ctx, "ProfileBuilder.Build")
	defer span.End()
	span.SetAttributes(attribute.String("country_code", countryCode))

	b.builds.Add(ctx, 1)

	profile := make(Profile, 0, len(Catalog))
	for _, section := range Catalog {
		results := make([]IndicatorResult, 0, len(section.Indicators))
		for _, indicator := range section.Indicators {
			results = append(results, b.fetch(ctx, countryCode, indicator))
		}
		profile = append(profile, Section{
			Name:    section.Name,
			Results: results,
		})
	}
	return profile
}

func (b ProfileBuilder) fetch(ctx context.Context, countryCode string, indicator CatalogIndicator) IndicatorResult {
	fetched, err := b.fetcher.FetchIndicator(ctx, countryCode, indicator.Code)
	if err != nil {
		b.tel.ReportWarning(report_profile_builder_fetch, err, countryCode, indicator.Code)
		b.fallbacks.Add(ctx, 1, metric.WithAttributes(
			attribute.String("indicator", indicator.Code),
		))
		return Placeholder(indicator.Label)
	}
	return IndicatorResult{
		Indicator: indicator.Label,
		Value:     fetched.Value,
		Year:      fetched.Year,
	}
}
