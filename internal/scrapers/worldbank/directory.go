package worldbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Directory is the country directory of the REST API reduced to what
// enrichment needs.
type Directory struct {
	// Codes maps a lowercased country name to its 3-letter code. When the
	// directory lists a name twice, the later entry wins.
	Codes map[string]string
	// Names holds every directory name in the order the API returned them.
	Names []string
}

type directoryRecord struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

func (c Client) directoryUrl() string {
	return c.apiUrl + "/country"
}

// CountryDirectory fetches a single page of the country directory and builds
// the name -> code table from it.
func (c Client) CountryDirectory(ctx context.Context) (Directory, error) {
	link := c.directoryUrl()

	res, err := c.api.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format":   "json",
			"per_page": strconv.Itoa(directoryPageSize),
		}).
		Get(link)
	if err != nil {
		c.tel.ReportBroken(report_client_country_directory, fmt.Errorf("fetch: %w", err))
		return Directory{}, fmt.Errorf("fetch country directory: %w", err)
	}
	if !res.IsSuccess() {
		err := &FetchError{URL: link, StatusCode: res.StatusCode()}
		c.tel.ReportBroken(report_client_country_directory, err)
		return Directory{}, err
	}

	dir, err := parseDirectory(res.Body())
	if err != nil {
		err = &ParseError{URL: link, Err: err}
		c.tel.ReportBroken(report_client_country_directory, err)
		return Directory{}, err
	}
	c.tel.ReportDebug("parsed country directory", len(dir.Names))
	return dir, nil
}

// parseDirectory expects the v2 API envelope: [metadata, [record, ...]].
func parseDirectory(body []byte) (Directory, error) {
	var envelope []json.RawMessage
	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return Directory{}, fmt.Errorf("decode envelope: %w", err)
	}
	if len(envelope) != 2 {
		return Directory{}, fmt.Errorf("expected a 2 element envelope, got %d elements", len(envelope))
	}
	if isNull(envelope[1]) {
		return Directory{}, errors.New("records are null")
	}

	var records []directoryRecord
	err = json.Unmarshal(envelope[1], &records)
	if err != nil {
		return Directory{}, fmt.Errorf("decode records: %w", err)
	}

	dir := Directory{
		Codes: make(map[string]string, len(records)),
		Names: make([]string, 0, len(records)),
	}
	for i, record := range records {
		if record.ID == nil || record.Name == nil {
			return Directory{}, fmt.Errorf("record %d is missing id or name", i)
		}
		dir.Codes[strings.ToLower(*record.Name)] = *record.ID
		dir.Names = append(dir.Names, *record.Name)
	}
	return dir, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
