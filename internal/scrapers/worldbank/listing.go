package worldbank

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"wbcountries-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// countryPathMarker is the substring every country detail href contains.
const countryPathMarker = "/country/"

// Listing is a single country as it appears on the html country listing.
type Listing struct {
	Name string
	Link string
}

func (c Client) listingUrl() string {
	return c.siteUrl.JoinPath("country").String()
}

// detailLink resolves a scraped href against the site and points it at the chart view.
func (c Client) detailLink(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	link := c.siteUrl.ResolveReference(ref)
	query := link.Query()
	query.Set("view", "chart")
	link.RawQuery = query.Encode()
	return link.String(), nil
}

// ListCountries scrapes the country listing page. Anchors whose href contains
// "/country/" are kept, the first anchor with a given name wins and the
// result is sorted by name.
func (c Client) ListCountries(ctx context.Context) ([]Listing, error) {
	link := c.listingUrl()

	res, err := c.site.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		c.tel.ReportBroken(report_client_list_countries, fmt.Errorf("fetch: %w", err))
		return nil, fmt.Errorf("fetch country listing: %w", err)
	}
	if !res.IsSuccess() {
		err := &FetchError{URL: link, StatusCode: res.StatusCode()}
		c.tel.ReportBroken(report_client_list_countries, err)
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		err = &ParseError{URL: link, Err: err}
		c.tel.ReportBroken(report_client_list_countries, err)
		return nil, err
	}

	return c.parseListing(ctx, doc)
}

func (c Client) parseListing(ctx context.Context, doc *goquery.Document) ([]Listing, error) {
	anchors := htmlutil.GetAnchors(ctx, doc.Find("a[href]"))

	seen := make(map[string]struct{})
	var result []Listing
	for _, a := range anchors {
		if !strings.Contains(a.Href, countryPathMarker) {
			continue
		}
		if a.Name == "" {
			continue
		}
		_, duplicate := seen[a.Name]
		if duplicate {
			continue
		}

		link, err := c.detailLink(a.Href)
		if err != nil {
			c.tel.ReportWarning(report_client_list_countries, fmt.Errorf("resolve link: %w", err), a.Href)
			continue
		}
		seen[a.Name] = struct{}{}
		result = append(result, Listing{
			Name: a.Name,
			Link: link,
		})
	}

	slices.SortStableFunc(result, func(a, b Listing) int {
		return strings.Compare(a.Name, b.Name)
	})

	c.tel.ReportDebug("parsed country listing", len(anchors), len(result))
	return result, nil
}
