package worldbank

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"wbcountries-backend/internal/components/telemetry"
	"wbcountries-backend/internal/scrapers/worldbank/wbtest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, server *wbtest.Server) (Client, *telemetry.RecordingAPI) {
	t.Helper()
	tel := &telemetry.RecordingAPI{}
	client, err := NewClient(ClientOptions{
		SiteUrl: server.SiteUrl(),
		ApiUrl:  server.ApiUrl(),
		Timeout: 5 * time.Second,
	}, tel)
	require.NoError(t, err)
	return client, tel
}

func TestListCountries(t *testing.T) {
	server := wbtest.NewServer()
	defer server.Close()
	client, _ := newTestClient(t, server)

	listings, err := client.ListCountries(context.Background())
	require.NoError(t, err)

	expected := []Listing{
		{Name: "Canada", Link: server.URL + "/country/canada?view=chart"},
		{Name: "Cote d'Ivoire", Link: server.URL + "/country/cote-divoire?view=chart"},
		{Name: "France", Link: server.URL + "/country/france?view=chart"},
		{Name: "Korea, Rep.", Link: server.URL + "/country/korea-republic?view=chart"},
	}
	if diff := cmp.Diff(expected, listings); diff != "" {
		t.Fatalf("listing mismatch (-want +got):\n%s", diff)
	}
}

func TestListCountriesFetchError(t *testing.T) {
	server := wbtest.NewServer()
	defer server.Close()
	server.SetListing(http.StatusServiceUnavailable, "")
	client, tel := newTestClient(t, server)

	_, err := client.ListCountries(context.Background())
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
	require.NotEmpty(t, tel.Reports("broken"))
}

func TestCountryDirectory(t *testing.T) {
	server := wbtest.NewServer()
	defer server.Close()
	client, _ := newTestClient(t, server)

	dir, err := client.CountryDirectory(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"canada":        "CAN",
		"france":        "FRA",
		"korea, rep.":   "KOR",
		"côte d'ivoire": "CIV",
	}, dir.Codes)
	require.Equal(t, []string{"Canada", "France", "Korea, Rep.", "Côte d'Ivoire"}, dir.Names)
	require.Equal(t, "format=json&per_page=300", server.LastQuery("/v2/country"))
}

func TestCountryDirectoryErrors(t *testing.T) {
	server := wbtest.NewServer()
	defer server.Close()
	client, _ := newTestClient(t, server)

	server.SetDirectory(http.StatusInternalServerError, "")
	_, err := client.CountryDirectory(context.Background())
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))

	server.SetDirectory(0, `[{"message":[{"id":"120","key":"Invalid value"}]}]`)
	_, err = client.CountryDirectory(context.Background())
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParseDirectory(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected Directory
		fails    bool
	}{
		{
			name: "duplicate names keep the last code",
			body: `[{}, [{"id":"AAA","name":"Twin"},{"id":"BBB","name":"twin"}]]`,
			expected: Directory{
				Codes: map[string]string{"twin": "BBB"},
				Names: []string{"Twin", "twin"},
			},
		},
		{
			name: "empty records",
			body: `[{}, []]`,
			expected: Directory{
				Codes: map[string]string{},
				Names: []string{},
			},
		},
		{name: "not an array", body: `{"countries":[]}`, fails: true},
		{name: "single element", body: `[{}]`, fails: true},
		{name: "three elements", body: `[{}, [], []]`, fails: true},
		{name: "null records", body: `[{}, null]`, fails: true},
		{name: "records not an array", body: `[{}, {"id":"FRA"}]`, fails: true},
		{name: "record without name", body: `[{}, [{"id":"FRA"}]]`, fails: true},
		{name: "not json", body: `<html></html>`, fails: true},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			dir, err := parseDirectory([]byte(test.body))
			if test.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, dir)
		})
	}
}

func TestFetchIndicator(t *testing.T) {
	server := wbtest.NewServer()
	defer server.Close()
	server.SetIndicator("FRA", "SP.POP.TOTL", wbtest.IndicatorJson("68170228", "2023"))
	server.SetIndicator("FRA", "SI.POV.DDAY", wbtest.EmptyIndicatorJson)
	server.SetIndicator("FRA", "EG.ELC.ACCS.ZS", `{"unexpected": true}`)
	client, tel := newTestClient(t, server)
	ctx := context.Background()

	population, err := client.FetchIndicator(ctx, "FRA", "SP.POP.TOTL")
	require.NoError(t, err)
	require.True(t, population.HasValue())
	require.Equal(t, 68170228.0, *population.Value)
	require.Equal(t, "2023", population.Year)
	require.Equal(t, "format=json&mrv=1", server.LastQuery("/v2/country/FRA/indicator/SP.POP.TOTL"))

	poverty, err := client.FetchIndicator(ctx, "FRA", "SI.POV.DDAY")
	require.NoError(t, err)
	require.Equal(t, NoData("SI.POV.DDAY"), poverty)

	electricity, err := client.FetchIndicator(ctx, "FRA", "EG.ELC.ACCS.ZS")
	require.NoError(t, err)
	require.Equal(t, NoData("EG.ELC.ACCS.ZS"), electricity)
	require.Len(t, tel.Reports("warning"), 1)

	_, err = client.FetchIndicator(ctx, "FRA", "IT.NET.USER.ZS")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

func TestParseIndicator(t *testing.T) {
	value := 82.3
	testCases := []struct {
		name     string
		body     string
		expected Indicator
		fails    bool
	}{
		{
			name:     "record",
			body:     `[{}, [{"value": 82.3, "date": "2022"}]]`,
			expected: Indicator{Code: "X", Value: &value, Year: "2022"},
		},
		{
			name:     "null value keeps the year",
			body:     `[{}, [{"value": null, "date": "2022"}]]`,
			expected: Indicator{Code: "X", Year: "2022"},
		},
		{
			name:     "missing date",
			body:     `[{}, [{"value": 82.3}]]`,
			expected: Indicator{Code: "X", Value: &value},
		},
		{name: "empty records", body: `[{}, []]`, expected: NoData("X")},
		{name: "null records", body: `[{}, null]`, expected: NoData("X")},
		{name: "error envelope", body: `[{"message":[{"key":"Invalid value"}]}]`, expected: NoData("X")},
		{name: "string value", body: `[{}, [{"value": "lots", "date": "2022"}]]`, fails: true},
		{name: "not json", body: `nope`, fails: true},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			indicator, err := parseIndicator("X", []byte(test.body))
			if test.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, indicator)
		})
	}
}
