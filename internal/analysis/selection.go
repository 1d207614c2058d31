package analysis

import (
	"sort"

	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	"github.com/KaramelBytes/worldpop-cli/internal/series"
)

// Selection narrows the series for display or export. Empty Countries or
// Regions mean "all".
type Selection struct {
	Year      int
	Countries []string
	Regions   []catalog.Region
}

// Row is one line of a selected table.
type Row struct {
	Country    string
	Region     catalog.Region
	Population int64
}

// ResolveCountries returns the countries a selection covers, in request order
// (series order when countries is empty). Names unknown to the series are
// dropped. When regions is non-empty only countries in those regions remain.
func ResolveCountries(s *series.Series, countries []string, regions []catalog.Region) []string {
	start := countries
	if len(start) == 0 {
		start = s.Countries()
	}
	var allowed map[catalog.Region]struct{}
	if len(regions) > 0 {
		allowed = make(map[catalog.Region]struct{}, len(regions))
		for _, r := range regions {
			allowed[r] = struct{}{}
		}
	}
	out := make([]string, 0, len(start))
	seen := make(map[string]struct{}, len(start))
	for _, c := range start {
		if _, dup := seen[c]; dup {
			continue
		}
		region, ok := s.RegionOf(c)
		if !ok {
			continue
		}
		if allowed != nil {
			if _, in := allowed[region]; !in {
				continue
			}
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Select applies the region filter to the country set, restricts to the
// selection year and sorts by population (descending), then country name.
// An unknown year or a filter that excludes everything yields an empty,
// non-nil slice.
func Select(s *series.Series, sel Selection) []Row {
	rows := []Row{}
	if !s.HasYear(sel.Year) {
		return rows
	}
	for _, c := range ResolveCountries(s, sel.Countries, sel.Regions) {
		o, ok := s.At(c, sel.Year)
		if !ok {
			continue
		}
		rows = append(rows, Row{Country: o.Country, Region: o.Region, Population: o.Population})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Population == rows[j].Population {
			return rows[i].Country < rows[j].Country
		}
		return rows[i].Population > rows[j].Population
	})
	return rows
}

// ValidateYear returns ErrInvalidYear when year is not in the series.
func ValidateYear(s *series.Series, year int) error {
	if !s.HasYear(year) {
		return ErrInvalidYear
	}
	return nil
}
