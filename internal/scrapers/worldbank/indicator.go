package worldbank

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Indicator is the most recent recorded value of an indicator for a country.
// A nil Value means the API had no usable record.
type Indicator struct {
	Code  string
	Value *float64
	Year  string
}

// NoData is the Indicator used when the API answered but had nothing usable.
func NoData(code string) Indicator {
	return Indicator{Code: code}
}

func (i Indicator) HasValue() bool {
	return i.Value != nil
}

type indicatorRecord struct {
	Value *float64 `json:"value"`
	Date  *string  `json:"date"`
}

func (c Client) indicatorUrl(countryCode, indicatorCode string) string {
	return fmt.Sprintf(
		"%s/country/%s/indicator/%s",
		c.apiUrl,
		url.PathEscape(countryCode),
		url.PathEscape(indicatorCode),
	)
}

// FetchIndicator requests the single most recent value (mrv=1) of an
// indicator for a country.
//
// A non-2xx status is returned as *FetchError and transport failures are
// returned as is. An empty or malformed body is not an error, it results in
// NoData.
func (c Client) FetchIndicator(ctx context.Context, countryCode, indicatorCode string) (Indicator, error) {
	link := c.indicatorUrl(countryCode, indicatorCode)

	res, err := c.api.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "json",
			"mrv":    "1",
		}).
		Get(link)
	if err != nil {
		return Indicator{}, fmt.Errorf("fetch indicator %s for %s: %w", indicatorCode, countryCode, err)
	}
	if !res.IsSuccess() {
		return Indicator{}, &FetchError{URL: link, StatusCode: res.StatusCode()}
	}

	indicator, err := parseIndicator(indicatorCode, res.Body())
	if err != nil {
		c.tel.ReportWarning(
			report_client_fetch_indicator,
			&ParseError{URL: link, Err: err},
		)
		return NoData(indicatorCode), nil
	}
	return indicator, nil
}

// parseIndicator expects the v2 API envelope: [metadata, [record, ...]].
// A missing or empty records section yields NoData without an error.
func parseIndicator(code string, body []byte) (Indicator, error) {
	var envelope []json.RawMessage
	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return Indicator{}, fmt.Errorf("decode envelope: %w", err)
	}
	if len(envelope) < 2 || isNull(envelope[1]) {
		return NoData(code), nil
	}

	var records []indicatorRecord
	err = json.Unmarshal(envelope[1], &records)
	if err != nil {
		return Indicator{}, fmt.Errorf("decode records: %w", err)
	}
	if len(records) == 0 {
		return NoData(code), nil
	}

	record := records[0]
	indicator := Indicator{
		Code:  code,
		Value: record.Value,
	}
	if record.Date != nil {
		indicator.Year = *record.Date
	}
	return indicator, nil
}
