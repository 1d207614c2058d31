package analysis

import (
	"math"

	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	"github.com/KaramelBytes/worldpop-cli/internal/series"
)

// AgeGroups are the pyramid bands from youngest to oldest.
var AgeGroups = []string{"0-14", "15-24", "25-54", "55-64", "65+"}

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

// ageShares holds male and female shares per AgeGroups band.
type ageShares struct {
	male, female [5]float64
}

var sharesByStructure = map[catalog.AgeStructure]ageShares{
	catalog.Aged: {
		male:   [5]float64{0.15, 0.12, 0.35, 0.18, 0.20},
		female: [5]float64{0.14, 0.11, 0.33, 0.19, 0.23},
	},
	catalog.Young: {
		male:   [5]float64{0.25, 0.20, 0.40, 0.10, 0.05},
		female: [5]float64{0.24, 0.19, 0.38, 0.12, 0.07},
	},
}

// PyramidBar is one (country, age group, gender) bar of a simulated pyramid.
type PyramidBar struct {
	Country    string
	AgeGroup   string
	Gender     Gender
	Population int64
	Percentage float64
}

// Pyramid simulates an age distribution for each requested country using its
// own population in year and the age structure from the catalog. Countries
// missing from the catalog use the Young structure; countries without an
// observation in year are skipped.
func Pyramid(s *series.Series, c *catalog.Catalog, year int, countries []string) []PyramidBar {
	out := []PyramidBar{}
	seen := map[string]struct{}{}
	for _, name := range countries {
		if _, dup := seen[name]; dup {
			continue
		}
		o, ok := s.At(name, year)
		if !ok {
			continue
		}
		seen[name] = struct{}{}
		structure := catalog.Young
		if p, ok := c.Profile(name); ok {
			structure = p.AgeStructure
		}
		sh := sharesByStructure[structure]
		pop := float64(o.Population)
		for i, group := range AgeGroups {
			out = append(out,
				PyramidBar{Country: name, AgeGroup: group, Gender: Male, Population: int64(pop * sh.male[i] * 0.5), Percentage: sharePct(sh.male[i])},
				PyramidBar{Country: name, AgeGroup: group, Gender: Female, Population: int64(pop * sh.female[i] * 0.5), Percentage: sharePct(sh.female[i])},
			)
		}
	}
	return out
}

// sharePct converts a share to a percentage rounded to two decimals.
func sharePct(share float64) float64 {
	return math.Round(share*10000) / 100
}
