package analysis

import (
	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	"github.com/KaramelBytes/worldpop-cli/internal/series"
)

// GrowthSummary compares a country's population in its first and last year.
type GrowthSummary struct {
	Country         string
	Region          catalog.Region
	FirstYear       int
	LastYear        int
	FirstPopulation int64
	LastPopulation  int64
	// GrowthPct is (last-first)/first*100. Zero when Undefined.
	GrowthPct float64
	// Undefined is set when the baseline population is zero.
	Undefined bool
}

// Summarize computes one GrowthSummary per country in series order.
func Summarize(s *series.Series) []GrowthSummary {
	return SummarizeObservations(s.Observations())
}

// SummarizeObservations summarizes raw observations. The baseline and latest
// figures are taken from each country's earliest and latest year, never from
// the smallest or largest population value.
func SummarizeObservations(obs []series.Observation) []GrowthSummary {
	type span struct{ first, last series.Observation }
	spans := map[string]*span{}
	var order []string
	for _, o := range obs {
		sp, ok := spans[o.Country]
		if !ok {
			spans[o.Country] = &span{first: o, last: o}
			order = append(order, o.Country)
			continue
		}
		if o.Year < sp.first.Year {
			sp.first = o
		}
		if o.Year > sp.last.Year {
			sp.last = o
		}
	}
	out := make([]GrowthSummary, 0, len(order))
	for _, name := range order {
		sp := spans[name]
		gs := GrowthSummary{
			Country:         name,
			Region:          sp.first.Region,
			FirstYear:       sp.first.Year,
			LastYear:        sp.last.Year,
			FirstPopulation: sp.first.Population,
			LastPopulation:  sp.last.Population,
		}
		if gs.FirstPopulation == 0 {
			gs.Undefined = true
		} else {
			gs.GrowthPct = float64(gs.LastPopulation-gs.FirstPopulation) / float64(gs.FirstPopulation) * 100
		}
		out = append(out, gs)
	}
	return out
}

// Defined drops summaries whose growth is undefined.
func Defined(sums []GrowthSummary) []GrowthSummary {
	out := make([]GrowthSummary, 0, len(sums))
	for _, s := range sums {
		if !s.Undefined {
			out = append(out, s)
		}
	}
	return out
}
