// Package worldbank scrapes the World Bank country listing page and reads the
// World Bank v2 REST API (country directory and per-country indicators).
package worldbank

import (
	"net/url"
	"strings"
	"time"

	"wbcountries-backend/internal/assert"
	"wbcountries-backend/internal/components/telemetry"
	"wbcountries-backend/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultSiteUrl = "https://data.worldbank.org"
	DefaultApiUrl  = "https://api.worldbank.org/v2"

	// the directory is read as a single page of this size
	directoryPageSize = 300
)

const (
	report_client_list_countries    = "client.list-countries"
	report_client_country_directory = "client.country-directory"
	report_client_fetch_indicator   = "client.fetch-indicator"
)

type ClientOptions struct {
	// SiteUrl is the base of the html country listing, it defaults to DefaultSiteUrl.
	SiteUrl string
	// ApiUrl is the base of the v2 REST API, it defaults to DefaultApiUrl.
	ApiUrl string
	// Timeout is applied per request, zero means no timeout.
	Timeout time.Duration
	// BypassCloudflare wraps the transport used for the html listing with
	// browser-like TLS and headers.
	BypassCloudflare bool
	// Dump receives every raw exchange of both clients when set.
	Dump restyutil.Output
}

type Client struct {
	site    *resty.Client
	api     *resty.Client
	siteUrl *url.URL
	apiUrl  string
	tel     telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (Client, error) {
	assert.NotNil(tel, "tel")
	tel = telemetry.NewScopedAPI("worldbank", tel)

	if opts.SiteUrl == "" {
		opts.SiteUrl = DefaultSiteUrl
	}
	if opts.ApiUrl == "" {
		opts.ApiUrl = DefaultApiUrl
	}

	siteUrl, err := url.Parse(strings.TrimSuffix(opts.SiteUrl, "/"))
	if err != nil {
		return Client{}, err
	}
	_, err = url.Parse(opts.ApiUrl)
	if err != nil {
		return Client{}, err
	}

	site := resty.New()
	site.SetTimeout(opts.Timeout)
	site.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	if opts.BypassCloudflare {
		site.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(site.GetClient().Transport)
	}
	telemetry.InstrumentResty(site, tel, "wbcountries.worldbank.site")
	restyutil.Dump(site, "site", opts.Dump)

	api := resty.New()
	api.SetTimeout(opts.Timeout)
	api.SetHeader("accept", "application/json")
	telemetry.InstrumentResty(api, tel, "wbcountries.worldbank.api")
	restyutil.Dump(api, "api", opts.Dump)

	return Client{
		site:    site,
		api:     api,
		siteUrl: siteUrl,
		apiUrl:  strings.TrimSuffix(opts.ApiUrl, "/"),
		tel:     tel,
	}, nil
}
