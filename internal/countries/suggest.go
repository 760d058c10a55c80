package countries

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Suggestion pairs a country that enrichment could not match with the most
// similar directory name that no other country matched.
type Suggestion struct {
	Name       string
	Closest    string
	Similarity float64
}

// SuggestMatches is purely informational, it never assigns codes. Directory
// names already taken by an exact match are not offered.
func SuggestMatches(countries []Country, directoryNames []string) []Suggestion {
	taken := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		if c.ID != "" {
			taken[strings.ToLower(c.Name)] = struct{}{}
		}
	}

	var result []Suggestion
	for _, c := range countries {
		if c.ID != "" {
			continue
		}

		suggestion := Suggestion{Name: c.Name}
		for _, candidate := range directoryNames {
			_, isTaken := taken[strings.ToLower(candidate)]
			if isTaken {
				continue
			}
			similarity := matchr.JaroWinkler(
				strings.ToLower(c.Name),
				strings.ToLower(candidate),
				false,
			)
			if similarity > suggestion.Similarity {
				suggestion.Similarity = similarity
				suggestion.Closest = candidate
			}
		}
		result = append(result, suggestion)
	}
	return result
}
