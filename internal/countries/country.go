// Package countries joins the scraped country listing with the World Bank
// country directory and keeps the result, along with lazily built indicator
// profiles, for the lifetime of the process.
package countries

import (
	"bytes"
	"encoding/json"
)

// NoDataValue is what IndicatorResult.Value serializes to when there is no value.
const NoDataValue = "No data"

type IndicatorResult struct {
	Indicator string
	// Value is nil when no value is available.
	Value *float64
	Year  string
}

func (r IndicatorResult) MarshalJSON() ([]byte, error) {
	var value any = NoDataValue
	if r.Value != nil {
		value = *r.Value
	}
	return json.Marshal(struct {
		Indicator string `json:"indicator"`
		Value     any    `json:"value"`
		Year      string `json:"year"`
	}{
		Indicator: r.Indicator,
		Value:     value,
		Year:      r.Year,
	})
}

// Placeholder is the result used in place of an indicator that could not be fetched.
func Placeholder(label string) IndicatorResult {
	return IndicatorResult{Indicator: label}
}

type Section struct {
	Name    string
	Results []IndicatorResult
}

// Profile is the set of indicator results of a country grouped by section.
// Sections keep the order of the catalog.
type Profile []Section

func (p Profile) Empty() bool {
	return len(p) == 0
}

// Section returns the results of the named section.
func (p Profile) Section(name string) ([]IndicatorResult, bool) {
	for _, s := range p {
		if s.Name == name {
			return s.Results, true
		}
	}
	return nil, false
}

// MarshalJSON renders the profile as an object keyed by section name, in
// section order. An empty profile renders as {}.
func (p Profile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, section := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(section.Name)
		if err != nil {
			return nil, err
		}
		results := section.Results
		if results == nil {
			results = []IndicatorResult{}
		}
		value, err := json.Marshal(results)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type Country struct {
	// ID is the 3-letter code of the country, it is empty when the name did
	// not match any directory entry.
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Link    string  `json:"link"`
	Profile Profile `json:"profile"`
}
