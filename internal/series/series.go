// Package series holds population observations per (country, year) and the
// sources that produce them.
package series

import (
	"context"
	"fmt"
	"slices"

	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
)

// Observation is the population of one country in one year.
type Observation struct {
	Country    string
	Year       int
	Population int64
	Region     catalog.Region
}

// Source supplies a population series for a catalog. The synthetic Generator
// is one implementation; a loader for real data would be another.
type Source interface {
	Supply(ctx context.Context, c *catalog.Catalog) (*Series, error)
}

// Series is an immutable set of observations ordered by country then year.
type Series struct {
	years     []int
	obs       []Observation
	countries []string
	rates     map[string]float64
	// country -> year -> index into obs
	index map[string]map[int]int
	// year -> sum of populations
	totals map[int]int64
}

// NewSeries validates and indexes observations. Every country must have
// exactly one observation per year in years, and populations must be
// positive. rates may be nil.
func NewSeries(years []int, obs []Observation, rates map[string]float64) (*Series, error) {
	if len(years) == 0 {
		return nil, fmt.Errorf("series: %w", ErrEmptyYears)
	}
	s := &Series{
		years:  slices.Clone(years),
		obs:    slices.Clone(obs),
		rates:  make(map[string]float64, len(rates)),
		index:  make(map[string]map[int]int),
		totals: make(map[int]int64, len(years)),
	}
	slices.Sort(s.years)
	s.years = slices.Compact(s.years)
	valid := make(map[int]struct{}, len(years))
	for _, y := range s.years {
		valid[y] = struct{}{}
	}
	for i, o := range s.obs {
		if _, ok := valid[o.Year]; !ok {
			return nil, fmt.Errorf("series: %s@%d: %w", o.Country, o.Year, ErrYearOutOfSequence)
		}
		if o.Population <= 0 {
			return nil, fmt.Errorf("series: %s@%d: %w", o.Country, o.Year, ErrNonPositivePopulation)
		}
		byYear, ok := s.index[o.Country]
		if !ok {
			byYear = make(map[int]int, len(s.years))
			s.index[o.Country] = byYear
			s.countries = append(s.countries, o.Country)
		}
		if _, dup := byYear[o.Year]; dup {
			return nil, fmt.Errorf("series: %s@%d: %w", o.Country, o.Year, ErrDuplicateObservation)
		}
		byYear[o.Year] = i
		s.totals[o.Year] += o.Population
	}
	for _, c := range s.countries {
		if got := len(s.index[c]); got != len(s.years) {
			return nil, fmt.Errorf("series: %s has %d of %d years: %w", c, got, len(s.years), ErrIncompleteSeries)
		}
	}
	for k, v := range rates {
		s.rates[k] = v
	}
	return s, nil
}

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.obs) }

// Observations returns a copy of all observations in series order.
func (s *Series) Observations() []Observation { return slices.Clone(s.obs) }

// Years returns the sorted year sequence.
func (s *Series) Years() []int { return slices.Clone(s.years) }

// FirstYear returns the earliest year of the sequence.
func (s *Series) FirstYear() int { return s.years[0] }

// LastYear returns the latest year of the sequence.
func (s *Series) LastYear() int { return s.years[len(s.years)-1] }

// HasYear reports whether y is a member of the year sequence.
func (s *Series) HasYear(y int) bool {
	_, ok := slices.BinarySearch(s.years, y)
	return ok
}

// Countries returns the distinct countries in first-seen order.
func (s *Series) Countries() []string { return slices.Clone(s.countries) }

// HasCountry reports whether the series carries observations for name.
func (s *Series) HasCountry(name string) bool {
	_, ok := s.index[name]
	return ok
}

// At returns the observation for a country and year.
func (s *Series) At(country string, year int) (Observation, bool) {
	byYear, ok := s.index[country]
	if !ok {
		return Observation{}, false
	}
	i, ok := byYear[year]
	if !ok {
		return Observation{}, false
	}
	return s.obs[i], true
}

// ForCountry returns a country's observations in year order.
func (s *Series) ForCountry(country string) []Observation {
	byYear, ok := s.index[country]
	if !ok {
		return nil
	}
	out := make([]Observation, 0, len(byYear))
	for _, y := range s.years {
		if i, ok := byYear[y]; ok {
			out = append(out, s.obs[i])
		}
	}
	return out
}

// ForYear returns all observations of one year in series order.
func (s *Series) ForYear(year int) []Observation {
	var out []Observation
	for _, c := range s.countries {
		if i, ok := s.index[c][year]; ok {
			out = append(out, s.obs[i])
		}
	}
	return out
}

// YearTotal sums populations across all countries for a year. The boolean is
// false when year is not part of the sequence.
func (s *Series) YearTotal(year int) (int64, bool) {
	if !s.HasYear(year) {
		return 0, false
	}
	return s.totals[year], true
}

// GrowthRate returns the annual growth rate used to generate a country, if known.
func (s *Series) GrowthRate(country string) (float64, bool) {
	r, ok := s.rates[country]
	return r, ok
}

// RegionOf returns the region recorded on a country's observations.
func (s *Series) RegionOf(country string) (catalog.Region, bool) {
	byYear, ok := s.index[country]
	if !ok {
		return "", false
	}
	for _, i := range byYear {
		return s.obs[i].Region, true
	}
	return "", false
}
