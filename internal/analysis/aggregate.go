package analysis

import (
	"sort"

	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	"github.com/KaramelBytes/worldpop-cli/internal/series"
)

// DefaultTopN is the default length of the growth ranking.
const DefaultTopN = 10

// RegionTotal is the summed population of one region in one year.
type RegionTotal struct {
	Region     catalog.Region
	Year       int
	Population int64
}

// GrowthRank is one entry of the growth ranking.
type GrowthRank struct {
	Country   string
	GrowthPct float64
}

// RegionTotals groups the series by (region, year) and sums populations.
// Results are sorted by region name, then year.
func RegionTotals(s *series.Series) []RegionTotal {
	type key struct {
		region catalog.Region
		year   int
	}
	acc := map[key]int64{}
	for _, o := range s.Observations() {
		acc[key{o.Region, o.Year}] += o.Population
	}
	out := make([]RegionTotal, 0, len(acc))
	for k, v := range acc {
		out = append(out, RegionTotal{Region: k.region, Year: k.year, Population: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Region == out[j].Region {
			return out[i].Year < out[j].Year
		}
		return out[i].Region < out[j].Region
	})
	return out
}

// RegionTotalsForYear keeps the totals of a single year.
func RegionTotalsForYear(totals []RegionTotal, year int) []RegionTotal {
	out := []RegionTotal{}
	for _, t := range totals {
		if t.Year == year {
			out = append(out, t)
		}
	}
	return out
}

// TopGrowth ranks countries by growth percentage, highest first, ties broken
// by country name. Undefined summaries are skipped. At most k entries are
// returned; k <= 0 yields an empty ranking.
func TopGrowth(sums []GrowthSummary, k int) []GrowthRank {
	ranks := make([]GrowthRank, 0, len(sums))
	for _, s := range sums {
		if s.Undefined {
			continue
		}
		ranks = append(ranks, GrowthRank{Country: s.Country, GrowthPct: s.GrowthPct})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].GrowthPct == ranks[j].GrowthPct {
			return ranks[i].Country < ranks[j].Country
		}
		return ranks[i].GrowthPct > ranks[j].GrowthPct
	})
	if k < 0 {
		k = 0
	}
	if len(ranks) > k {
		ranks = ranks[:k]
	}
	return ranks
}
