package analysis

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report is a text-friendly snapshot of one dashboard view.
type Report struct {
	Name     string
	Metrics  Metrics
	Rows     []Row
	Regions  []RegionTotal
	Ranking  []GrowthRank
	Warnings []string
}

var printer = message.NewPrinter(language.English)

// FormatPopulation renders n with thousands separators (1,234,567).
func FormatPopulation(n int64) string { return printer.Sprintf("%d", n) }

// Markdown renders the report as sectioned plain text.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[WORLD POPULATION]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("View: %s\n", r.Name))
	}
	m := r.Metrics
	b.WriteString(fmt.Sprintf("Year: %d\n", m.Year))
	b.WriteString(fmt.Sprintf("World population: %s", FormatPopulation(m.WorldPopulation)))
	if m.PriorAvailable {
		sign := "+"
		if m.Delta < 0 {
			sign = ""
		}
		b.WriteString(fmt.Sprintf(" (%s%s vs %d)", sign, FormatPopulation(m.Delta), m.PriorYear))
	} else {
		b.WriteString(fmt.Sprintf(" (%d unavailable)", m.PriorYear))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Countries displayed: %d\n", m.CountriesDisplayed))
	b.WriteString(fmt.Sprintf("Average growth rate: %.1f%%\n", m.AverageGrowth))
	b.WriteString(printer.Sprintf("Total growth: %.0f%%\n", m.TotalGrowth))

	if len(r.Rows) > 0 {
		b.WriteString("\n[POPULATION DATA]\n")
		b.WriteString("| Country | Region | Population |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, row := range r.Rows {
			b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", safeVal(row.Country), row.Region, FormatPopulation(row.Population)))
		}
	}
	if len(r.Regions) > 0 {
		b.WriteString("\n[REGIONS]\n")
		for _, t := range r.Regions {
			b.WriteString(fmt.Sprintf("- %s: %s\n", t.Region, FormatPopulation(t.Population)))
		}
	}
	if len(r.Ranking) > 0 {
		b.WriteString("\n[GROWTH RANKING]\n")
		for i, g := range r.Ranking {
			b.WriteString(fmt.Sprintf("%d. %s: %.1f%%\n", i+1, safeVal(g.Country), g.GrowthPct))
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
