package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Annual growth rate bounds for generated series.
const (
	MinGrowthRate = 0.005
	MaxGrowthRate = 0.025
)

// Entry is the raw input for one catalog country.
type Entry struct {
	Name           string
	BasePopulation int64
	// GrowthRate pins the annual growth rate; 0 lets the generator draw one.
	GrowthRate   float64
	AgeStructure AgeStructure
}

// CountryProfile is the immutable, resolved description of one country.
type CountryProfile struct {
	Name           string
	Region         Region
	BasePopulation int64
	GrowthRate     float64
	AgeStructure   AgeStructure
}

// Catalog is a static registry of country profiles in load order.
type Catalog struct {
	profiles []CountryProfile
	byName   map[string]int
	// country -> region, built once at load time
	regionOf map[string]Region
}

// New builds a catalog from entries and a region -> countries mapping.
// Countries not listed under any region are assigned Other. Malformed input
// (missing base population, duplicates, a country listed in two regions, a
// region listing an unregistered country) is rejected.
func New(entries []Entry, regions map[Region][]string) (*Catalog, error) {
	c := &Catalog{
		profiles: make([]CountryProfile, 0, len(entries)),
		byName:   make(map[string]int, len(entries)),
		regionOf: make(map[string]Region, len(entries)),
	}
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog: empty country name")
		}
		if _, dup := c.byName[name]; dup {
			return nil, &ProfileError{Country: name, Err: ErrDuplicateCountry}
		}
		if e.BasePopulation <= 0 {
			return nil, &ProfileError{Country: name, Err: ErrMissingBasePopulation}
		}
		if e.GrowthRate != 0 && (e.GrowthRate < MinGrowthRate || e.GrowthRate > MaxGrowthRate) {
			return nil, &ProfileError{Country: name, Err: fmt.Errorf("%w: %g", ErrInvalidGrowthRate, e.GrowthRate)}
		}
		c.byName[name] = len(c.profiles)
		c.profiles = append(c.profiles, CountryProfile{
			Name:           name,
			Region:         Other,
			BasePopulation: e.BasePopulation,
			GrowthRate:     e.GrowthRate,
			AgeStructure:   e.AgeStructure,
		})
	}

	// Iterate regions in a fixed order so conflicts are reported deterministically.
	keys := make([]Region, 0, len(regions))
	for r := range regions {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, r := range keys {
		if !r.Valid() {
			return nil, fmt.Errorf("catalog: %w: %q", ErrUnknownRegion, r)
		}
		for _, name := range regions[r] {
			name = strings.TrimSpace(name)
			idx, ok := c.byName[name]
			if !ok {
				return nil, &ProfileError{Country: name, Err: ErrMissingBasePopulation}
			}
			if prev, seen := c.regionOf[name]; seen && prev != r {
				return nil, &ProfileError{Country: name, Err: fmt.Errorf("%w: %s and %s", ErrConflictingRegion, prev, r)}
			}
			c.regionOf[name] = r
			c.profiles[idx].Region = r
		}
	}
	return c, nil
}

// Len returns the number of countries.
func (c *Catalog) Len() int { return len(c.profiles) }

// Profiles returns a copy of all profiles in catalog order.
func (c *Catalog) Profiles() []CountryProfile {
	out := make([]CountryProfile, len(c.profiles))
	copy(out, c.profiles)
	return out
}

// Profile looks up a country by name.
func (c *Catalog) Profile(name string) (CountryProfile, bool) {
	idx, ok := c.byName[name]
	if !ok {
		return CountryProfile{}, false
	}
	return c.profiles[idx], true
}

// Region returns the region of a country; unmapped or unknown countries are Other.
func (c *Catalog) Region(name string) Region {
	if r, ok := c.regionOf[name]; ok {
		return r
	}
	return Other
}

// Names returns country names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.profiles))
	for i, p := range c.profiles {
		out[i] = p.Name
	}
	return out
}

// Regions returns the distinct regions in use, sorted by name.
func (c *Catalog) Regions() []Region {
	seen := map[Region]struct{}{}
	var out []Region
	for _, p := range c.profiles {
		if _, ok := seen[p.Region]; ok {
			continue
		}
		seen[p.Region] = struct{}{}
		out = append(out, p.Region)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
