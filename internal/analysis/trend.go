package analysis

import (
	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	"github.com/KaramelBytes/worldpop-cli/internal/series"
)

// Point is one (year, population) sample of a trend line.
type Point struct {
	Year       int
	Population int64
}

// TrendLine is the population history of a single country.
type TrendLine struct {
	Country string
	Region  catalog.Region
	Points  []Point
}

// Trend returns the year-ordered history of each requested country, in
// request order. Unknown and repeated names are skipped.
func Trend(s *series.Series, countries []string) []TrendLine {
	out := make([]TrendLine, 0, len(countries))
	seen := map[string]struct{}{}
	for _, c := range countries {
		if _, dup := seen[c]; dup {
			continue
		}
		obs := s.ForCountry(c)
		if len(obs) == 0 {
			continue
		}
		seen[c] = struct{}{}
		line := TrendLine{Country: c, Region: obs[0].Region, Points: make([]Point, len(obs))}
		for i, o := range obs {
			line.Points[i] = Point{Year: o.Year, Population: o.Population}
		}
		out = append(out, line)
	}
	return out
}
