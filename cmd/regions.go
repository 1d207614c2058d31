package cmd

import (
	"fmt"

	"github.com/KaramelBytes/worldpop-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	regionsYear     int
	regionsAllYears bool
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Show population totals per region",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		year := c.Year
		if cmd.Flags().Changed("year") {
			year = regionsYear
		}
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		totals := sess.RegionTotals()
		if !regionsAllYears {
			if err := analysis.ValidateYear(sess.Series(), year); err != nil {
				return fmt.Errorf("year %d: %w", year, err)
			}
			totals = analysis.RegionTotalsForYear(totals, year)
		}
		if jsonOut {
			return printJSON(cmd.OutOrStdout(), totals)
		}
		for _, t := range totals {
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d  %s\n", t.Region, t.Year, analysis.FormatPopulation(t.Population))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
	regionsCmd.Flags().IntVarP(&regionsYear, "year", "y", 0, "year to total (default from config)")
	regionsCmd.Flags().BoolVar(&regionsAllYears, "all-years", false, "print every (region, year) total")
}
