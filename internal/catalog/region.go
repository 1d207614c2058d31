package catalog

import (
	"fmt"
	"strings"
)

// Region is one of a fixed set of world regions.
type Region string

const (
	Asia         Region = "Asia"
	Europe       Region = "Europe"
	NorthAmerica Region = "North America"
	SouthAmerica Region = "South America"
	Africa       Region = "Africa"
	// Other is assigned to countries that no region lists.
	Other Region = "Other"
)

// AllRegions lists every known region in display order.
var AllRegions = []Region{Asia, Europe, NorthAmerica, SouthAmerica, Africa, Other}

// Valid reports whether r is a member of the fixed region set.
func (r Region) Valid() bool {
	for _, k := range AllRegions {
		if r == k {
			return true
		}
	}
	return false
}

func (r Region) String() string { return string(r) }

// ParseRegion resolves a region name case-insensitively.
func ParseRegion(s string) (Region, error) {
	v := strings.TrimSpace(s)
	for _, r := range AllRegions {
		if strings.EqualFold(v, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRegion, s)
}

// ParseRegions resolves a list of region names, failing on the first unknown one.
func ParseRegions(names []string) ([]Region, error) {
	out := make([]Region, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		r, err := ParseRegion(n)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// AgeStructure selects the simulated age distribution used for population pyramids.
type AgeStructure int

const (
	// Young is a wide-based pyramid (large 0-14 share).
	Young AgeStructure = iota
	// Aged is an older population with a large 65+ share.
	Aged
)

func (a AgeStructure) String() string {
	switch a {
	case Aged:
		return "aged"
	default:
		return "young"
	}
}
