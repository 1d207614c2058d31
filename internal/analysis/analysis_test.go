package analysis_test

import (
	"context"
	"math"
	"sort"
	"testing"

	"github.com/KaramelBytes/worldpop-cli/internal/analysis"
	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	"github.com/KaramelBytes/worldpop-cli/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioSeries builds the A/B catalog with noise pinned to 1.0:
// A@1950=100, A@1955=105, B@1950=200, B@1955=221.
func scenarioSeries(t *testing.T) *series.Series {
	t.Helper()
	c, err := catalog.New([]catalog.Entry{
		{Name: "A", BasePopulation: 100, GrowthRate: 0.01},
		{Name: "B", BasePopulation: 200, GrowthRate: 0.02},
	}, map[catalog.Region][]string{
		catalog.Asia:   {"A"},
		catalog.Europe: {"B"},
	})
	require.NoError(t, err)
	opt := series.DefaultOptions()
	opt.Years = []int{1950, 1955}
	opt.NoiseMin, opt.NoiseMax = 1, 1
	opt.Seed = 1
	g, err := series.NewGenerator(opt)
	require.NoError(t, err)
	s, err := g.Generate(context.Background(), c)
	require.NoError(t, err)
	return s
}

func defaultSeries(t *testing.T, seed int64) (*catalog.Catalog, *series.Series) {
	t.Helper()
	c := catalog.MustDefault()
	opt := series.DefaultOptions()
	opt.Seed = seed
	g, err := series.NewGenerator(opt)
	require.NoError(t, err)
	s, err := g.Generate(context.Background(), c)
	require.NoError(t, err)
	return c, s
}

func TestScenario_RegionTotalsAndSelect(t *testing.T) {
	s := scenarioSeries(t)

	totals := analysis.RegionTotalsForYear(analysis.RegionTotals(s), 1955)
	assert.Equal(t, []analysis.RegionTotal{
		{Region: catalog.Asia, Year: 1955, Population: 105},
		{Region: catalog.Europe, Year: 1955, Population: 221},
	}, totals)

	rows := analysis.Select(s, analysis.Selection{Year: 1955})
	assert.Equal(t, []analysis.Row{
		{Country: "B", Region: catalog.Europe, Population: 221},
		{Country: "A", Region: catalog.Asia, Population: 105},
	}, rows)
}

func TestSummarize_UsesFirstAndLastYear(t *testing.T) {
	s := scenarioSeries(t)
	sums := analysis.Summarize(s)
	require.Len(t, sums, 2)
	assert.Equal(t, "A", sums[0].Country)
	assert.Equal(t, 1950, sums[0].FirstYear)
	assert.Equal(t, 1955, sums[0].LastYear)
	assert.InDelta(t, 5.0, sums[0].GrowthPct, 1e-9)
	assert.InDelta(t, 10.5, sums[1].GrowthPct, 1e-9)
}

func TestSummarizeObservations_ByYearNotByValue(t *testing.T) {
	// noise made the earliest year the largest value
	obs := []series.Observation{
		{Country: "X", Year: 1960, Population: 90, Region: catalog.Asia},
		{Country: "X", Year: 1950, Population: 110, Region: catalog.Asia},
		{Country: "X", Year: 1955, Population: 100, Region: catalog.Asia},
	}
	sums := analysis.SummarizeObservations(obs)
	require.Len(t, sums, 1)
	assert.Equal(t, int64(110), sums[0].FirstPopulation)
	assert.Equal(t, int64(90), sums[0].LastPopulation)
	assert.InDelta(t, -18.1818, sums[0].GrowthPct, 1e-3)
}

func TestSummarizeObservations_ZeroBaselineIsUndefined(t *testing.T) {
	obs := []series.Observation{
		{Country: "Z", Year: 1950, Population: 0, Region: catalog.Other},
		{Country: "Z", Year: 1955, Population: 10, Region: catalog.Other},
		{Country: "Y", Year: 1950, Population: 10, Region: catalog.Other},
		{Country: "Y", Year: 1955, Population: 20, Region: catalog.Other},
	}
	sums := analysis.SummarizeObservations(obs)
	require.Len(t, sums, 2)
	assert.True(t, sums[0].Undefined)
	assert.Zero(t, sums[0].GrowthPct)
	assert.Len(t, analysis.Defined(sums), 1)

	ranks := analysis.TopGrowth(sums, 10)
	assert.Equal(t, []analysis.GrowthRank{{Country: "Y", GrowthPct: 100}}, ranks)
}

func TestRegionTotals_SumMatchesYearTotal(t *testing.T) {
	_, s := defaultSeries(t, 3)
	totals := analysis.RegionTotals(s)
	for _, y := range s.Years() {
		var sum int64
		for _, rt := range analysis.RegionTotalsForYear(totals, y) {
			sum += rt.Population
		}
		var want int64
		for _, o := range s.ForYear(y) {
			want += o.Population
		}
		assert.Equal(t, want, sum, "year %d", y)
	}
	assert.True(t, sort.SliceIsSorted(totals, func(i, j int) bool {
		if totals[i].Region == totals[j].Region {
			return totals[i].Year < totals[j].Year
		}
		return totals[i].Region < totals[j].Region
	}))
}

func TestTopGrowth_OrderAndLength(t *testing.T) {
	_, s := defaultSeries(t, 5)
	ranks := analysis.TopGrowth(analysis.Summarize(s), 10)
	require.Len(t, ranks, 10)
	for i := 1; i < len(ranks); i++ {
		assert.Greater(t, ranks[i-1].GrowthPct, ranks[i].GrowthPct)
	}

	assert.Len(t, analysis.TopGrowth(analysis.Summarize(s), 50), 20)
	assert.Empty(t, analysis.TopGrowth(analysis.Summarize(s), 0))
}

func TestTopGrowth_TiesBrokenByName(t *testing.T) {
	sums := []analysis.GrowthSummary{
		{Country: "Charlie", GrowthPct: 10},
		{Country: "Alpha", GrowthPct: 10},
		{Country: "Bravo", GrowthPct: 20},
	}
	assert.Equal(t, []analysis.GrowthRank{
		{Country: "Bravo", GrowthPct: 20},
		{Country: "Alpha", GrowthPct: 10},
	}, analysis.TopGrowth(sums, 2))
}

func TestSelect_NoFiltersReturnsAllSortedDescending(t *testing.T) {
	_, s := defaultSeries(t, 11)
	rows := analysis.Select(s, analysis.Selection{Year: 2020})
	require.Len(t, rows, 20)
	assert.True(t, sort.SliceIsSorted(rows, func(i, j int) bool {
		if rows[i].Population == rows[j].Population {
			return rows[i].Country < rows[j].Country
		}
		return rows[i].Population > rows[j].Population
	}))
}

func TestSelect_Filters(t *testing.T) {
	_, s := defaultSeries(t, 13)

	rows := analysis.Select(s, analysis.Selection{Year: 2020, Regions: []catalog.Region{catalog.Europe}})
	got := map[string]bool{}
	for _, r := range rows {
		assert.Equal(t, catalog.Europe, r.Region)
		got[r.Country] = true
	}
	assert.Equal(t, map[string]bool{"Russia": true, "Germany": true, "Turkey": true}, got)

	// country list intersected with region filter
	rows = analysis.Select(s, analysis.Selection{
		Year:      2020,
		Countries: []string{"China", "Germany", "India"},
		Regions:   []catalog.Region{catalog.Asia},
	})
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Contains(t, []string{"China", "India"}, r.Country)
	}

	// region with no countries
	rows = analysis.Select(s, analysis.Selection{Year: 2020, Regions: []catalog.Region{catalog.Other}})
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	// unknown year fails closed
	rows = analysis.Select(s, analysis.Selection{Year: 2021})
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.ErrorIs(t, analysis.ValidateYear(s, 2021), analysis.ErrInvalidYear)
	assert.NoError(t, analysis.ValidateYear(s, 2020))
}

func TestResolveCountries(t *testing.T) {
	_, s := defaultSeries(t, 17)
	assert.Equal(t, []string{"Mexico", "United States"},
		analysis.ResolveCountries(s, []string{"Mexico", "Narnia", "United States", "Mexico"}, nil))
	assert.Equal(t, []string{"United States", "Mexico"},
		analysis.ResolveCountries(s, nil, []catalog.Region{catalog.NorthAmerica}))
	assert.Len(t, analysis.ResolveCountries(s, nil, nil), 20)
}

func TestComputeMetrics(t *testing.T) {
	_, s := defaultSeries(t, 19)
	sums := analysis.Summarize(s)

	m := analysis.ComputeMetrics(s, sums, analysis.Selection{Year: 2020, Countries: []string{"China", "India", "United States"}})
	total, _ := s.YearTotal(2020)
	prior, _ := s.YearTotal(2015)
	assert.Equal(t, total, m.WorldPopulation)
	assert.True(t, m.PriorAvailable)
	assert.Equal(t, 2015, m.PriorYear)
	assert.Equal(t, total-prior, m.Delta)
	assert.Equal(t, 3, m.CountriesDisplayed)
	assert.Equal(t, 20, m.GrowthCount)

	var sum float64
	for _, g := range sums {
		sum += g.GrowthPct
	}
	assert.InDelta(t, sum, m.TotalGrowth, 1e-9)
	assert.InDelta(t, sum/20, m.AverageGrowth, 1e-9)

	first := analysis.ComputeMetrics(s, sums, analysis.Selection{Year: 1950})
	assert.False(t, first.PriorAvailable, "1945 is not in the sequence")
	assert.Zero(t, first.Delta)
	assert.Equal(t, 1945, first.PriorYear)
	assert.Equal(t, 20, first.CountriesDisplayed)
}

func TestTrend(t *testing.T) {
	s := scenarioSeries(t)
	lines := analysis.Trend(s, []string{"B", "Nope", "A", "B"})
	require.Len(t, lines, 2)
	assert.Equal(t, "B", lines[0].Country)
	assert.Equal(t, []analysis.Point{{Year: 1950, Population: 200}, {Year: 1955, Population: 221}}, lines[0].Points)
	assert.Equal(t, catalog.Asia, lines[1].Region)
}

func TestPyramid(t *testing.T) {
	c, s := defaultSeries(t, 23)
	bars := analysis.Pyramid(s, c, 2020, []string{"China", "Nigeria"})
	require.Len(t, bars, 2*len(analysis.AgeGroups)*2)

	china, _ := s.At("China", 2020)
	nigeria, _ := s.At("Nigeria", 2020)
	assert.Equal(t, "China", bars[0].Country)
	assert.Equal(t, analysis.Male, bars[0].Gender)
	assert.Equal(t, int64(float64(china.Population)*0.15*0.5), bars[0].Population)
	assert.Equal(t, 15.0, bars[0].Percentage)
	for _, b := range bars {
		assert.Equal(t, math.Round(b.Percentage*100)/100, b.Percentage, "%s %s %s", b.Country, b.AgeGroup, b.Gender)
	}
	// shares whose float product is inexact still land on exact percentages
	assert.Equal(t, 7.0, bars[len(bars)-1].Percentage)

	// each country uses its own population and structure
	ng := bars[10]
	assert.Equal(t, "Nigeria", ng.Country)
	assert.Equal(t, int64(float64(nigeria.Population)*0.25*0.5), ng.Population)

	assert.Empty(t, analysis.Pyramid(s, c, 1999, []string{"China"}))
}

func TestReportMarkdown(t *testing.T) {
	s := scenarioSeries(t)
	sel := analysis.Selection{Year: 1955}
	sums := analysis.Summarize(s)
	rep := &analysis.Report{
		Name:    "test",
		Metrics: analysis.ComputeMetrics(s, sums, sel),
		Rows:    analysis.Select(s, sel),
		Regions: analysis.RegionTotalsForYear(analysis.RegionTotals(s), 1955),
		Ranking: analysis.TopGrowth(sums, 10),
	}
	md := rep.Markdown()
	assert.Contains(t, md, "[WORLD POPULATION]")
	assert.Contains(t, md, "World population: 326 (+26 vs 1950)")
	assert.Contains(t, md, "| B | Europe | 221 |")
	assert.Contains(t, md, "1. B: 10.5%")
	assert.Contains(t, md, "- Asia: 105")
	assert.NotContains(t, md, "[NOTES]")

	rep.Metrics = analysis.ComputeMetrics(s, sums, analysis.Selection{Year: 1950})
	rep.Warnings = []string{"no rows"}
	md = rep.Markdown()
	assert.Contains(t, md, "(1945 unavailable)")
	assert.Contains(t, md, "[NOTES]\n- no rows")
}

func TestFormatPopulation(t *testing.T) {
	assert.Equal(t, "1,234,567", analysis.FormatPopulation(1234567))
	assert.Equal(t, "999", analysis.FormatPopulation(999))
}
