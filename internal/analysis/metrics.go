package analysis

import "github.com/KaramelBytes/worldpop-cli/internal/series"

// PriorYearOffset is how far back the population delta looks.
const PriorYearOffset = 5

// Metrics are the headline figures shown above the charts.
type Metrics struct {
	Year            int
	WorldPopulation int64
	// PriorYear is Year-PriorYearOffset. PriorAvailable is false when that
	// year is not in the series, in which case PriorPopulation and Delta are 0.
	PriorYear       int
	PriorPopulation int64
	PriorAvailable  bool
	Delta           int64
	// CountriesDisplayed is the size of the resolved country set.
	CountriesDisplayed int
	// Growth statistics over all defined summaries, not only the selection.
	AverageGrowth float64
	TotalGrowth   float64
	GrowthCount   int
}

// ComputeMetrics derives the summary scalars for a selection. World
// population is unfiltered: it sums every country in the year.
func ComputeMetrics(s *series.Series, sums []GrowthSummary, sel Selection) Metrics {
	m := Metrics{Year: sel.Year, PriorYear: sel.Year - PriorYearOffset}
	if total, ok := s.YearTotal(sel.Year); ok {
		m.WorldPopulation = total
		if prior, ok := s.YearTotal(m.PriorYear); ok {
			m.PriorPopulation = prior
			m.PriorAvailable = true
			m.Delta = total - prior
		}
	}
	m.CountriesDisplayed = len(ResolveCountries(s, sel.Countries, sel.Regions))
	for _, g := range sums {
		if g.Undefined {
			continue
		}
		m.TotalGrowth += g.GrowthPct
		m.GrowthCount++
	}
	if m.GrowthCount > 0 {
		m.AverageGrowth = m.TotalGrowth / float64(m.GrowthCount)
	}
	return m
}
