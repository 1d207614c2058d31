package cmd

import (
	"fmt"

	"github.com/KaramelBytes/worldpop-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	growthTopN    int
	growthSummary bool
)

var growthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Rank countries by growth between the first and last year",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		topN := c.TopN
		if cmd.Flags().Changed("top") {
			topN = growthTopN
		}
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if growthSummary {
			sums := sess.Summaries()
			if jsonOut {
				return printJSON(out, sums)
			}
			for _, s := range sums {
				if s.Undefined {
					fmt.Fprintf(out, "%s: %d %s -> %d %s (growth undefined)\n", s.Country,
						s.FirstYear, analysis.FormatPopulation(s.FirstPopulation),
						s.LastYear, analysis.FormatPopulation(s.LastPopulation))
					continue
				}
				fmt.Fprintf(out, "%s: %d %s -> %d %s (%.1f%%)\n", s.Country,
					s.FirstYear, analysis.FormatPopulation(s.FirstPopulation),
					s.LastYear, analysis.FormatPopulation(s.LastPopulation), s.GrowthPct)
			}
			return nil
		}
		ranking := analysis.TopGrowth(sess.Summaries(), topN)
		if jsonOut {
			return printJSON(out, ranking)
		}
		for i, r := range ranking {
			fmt.Fprintf(out, "%d. %s: %.1f%%\n", i+1, r.Country, r.GrowthPct)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(growthCmd)
	growthCmd.Flags().IntVar(&growthTopN, "top", 0, "number of countries to rank (default from config)")
	growthCmd.Flags().BoolVar(&growthSummary, "summary", false, "print the first/last comparison for every country instead of the ranking")
}
