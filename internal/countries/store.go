package countries

import (
	"context"
	"errors"
	"strings"
	"sync"

	"wbcountries-backend/internal/assert"
)

var (
	ErrCountryNotFound = errors.New("country not found")
	ErrCodeNotFound    = errors.New("country code not found for profile lookup")
)

type profileBuilder interface {
	Build(ctx context.Context, countryCode string) Profile
}

// Store owns the enriched country list. The list is never resized, only a
// country's profile is filled in, at most once.
//
// Two concurrent first lookups of the same country may both build its
// profile, the last one to finish is kept. The lock only guards the write.
type Store struct {
	mutex     sync.RWMutex
	countries []Country
	builder   profileBuilder
}

func NewStore(countries []Country, builder profileBuilder) *Store {
	assert.NotNil(builder, "builder")

	owned := make([]Country, len(countries))
	copy(owned, countries)
	return &Store{
		countries: owned,
		builder:   builder,
	}
}

// List returns a copy of every country, profiles included when they have
// already been built.
func (s *Store) List() []Country {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]Country, len(s.countries))
	copy(out, s.countries)
	return out
}

func (s *Store) find(name string) (int, Country, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for i, c := range s.countries {
		if strings.EqualFold(c.Name, name) {
			return i, c, true
		}
	}
	return 0, Country{}, false
}

// Details looks a country up by case-insensitive name and builds its profile
// if it does not have one yet.
func (s *Store) Details(ctx context.Context, name string) (Country, error) {
	idx, country, ok := s.find(name)
	if !ok {
		return Country{}, ErrCountryNotFound
	}
	if !country.Profile.Empty() {
		return country, nil
	}
	if country.ID == "" {
		return Country{}, ErrCodeNotFound
	}

	// the profile is kept for the process lifetime, so the build must not
	// stop early when the caller goes away
	profile := s.builder.Build(context.WithoutCancel(ctx), country.ID)

	s.mutex.Lock()
	s.countries[idx].Profile = profile
	country = s.countries[idx]
	s.mutex.Unlock()

	return country, nil
}

// Counts returns how many countries have a code and how many do not.
func (s *Store) Counts() (matched, unmatched int) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, c := range s.countries {
		if c.ID == "" {
			unmatched++
			continue
		}
		matched++
	}
	return matched, unmatched
}
