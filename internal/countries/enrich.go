package countries

import (
	"context"
	"fmt"
	"strings"

	"wbcountries-backend/internal/scrapers/worldbank"
)

// Source is where the country listing and the country directory come from.
type Source interface {
	ListCountries(ctx context.Context) ([]worldbank.Listing, error)
	CountryDirectory(ctx context.Context) (worldbank.Directory, error)
}

// Enrich attaches a code to every listed country by looking up its lowercased
// name in `codes`. Countries without a match get an empty ID.
func Enrich(listings []worldbank.Listing, codes map[string]string) []Country {
	result := make([]Country, len(listings))
	for i, listing := range listings {
		result[i] = Country{
			ID:   codes[strings.ToLower(listing.Name)],
			Name: listing.Name,
			Link: listing.Link,
		}
	}
	return result
}

// Load scrapes the listing, fetches the directory and enriches the listing
// with it. Any failure aborts the whole load.
func Load(ctx context.Context, source Source) ([]Country, worldbank.Directory, error) {
	listings, err := source.ListCountries(ctx)
	if err != nil {
		return nil, worldbank.Directory{}, fmt.Errorf("list countries: %w", err)
	}
	dir, err := source.CountryDirectory(ctx)
	if err != nil {
		return nil, worldbank.Directory{}, fmt.Errorf("fetch country directory: %w", err)
	}
	return Enrich(listings, dir.Codes), dir, nil
}
