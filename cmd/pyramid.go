package cmd

import (
	"fmt"

	"github.com/KaramelBytes/worldpop-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var pyramidSel selectionFlags

// minPyramidCountries is how many countries a pyramid comparison needs.
const minPyramidCountries = 2

var pyramidCmd = &cobra.Command{
	Use:   "pyramid",
	Short: "Show the simulated age pyramid of the selected countries",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		sel, err := pyramidSel.resolve(cmd, c)
		if err != nil {
			return err
		}
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		if err := analysis.ValidateYear(sess.Series(), sel.Year); err != nil {
			return fmt.Errorf("year %d: %w", sel.Year, err)
		}
		countries := analysis.ResolveCountries(sess.Series(), sel.Countries, sel.Regions)
		bars := analysis.Pyramid(sess.Series(), sess.Catalog(), sel.Year, countries)
		if jsonOut {
			return printJSON(cmd.OutOrStdout(), bars)
		}
		out := cmd.OutOrStdout()
		last := ""
		for _, b := range bars {
			if b.Country != last {
				fmt.Fprintf(out, "%s, %d\n", b.Country, sel.Year)
				last = b.Country
			}
			fmt.Fprintf(out, "  %-6s %-6s %14s  %5.1f%%\n", b.AgeGroup, b.Gender, analysis.FormatPopulation(b.Population), b.Percentage)
		}
		if len(countries) < minPyramidCountries {
			fmt.Fprintf(out, "ℹ Select at least %d countries to compare population pyramids.\n", minPyramidCountries)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pyramidCmd)
	pyramidSel.register(pyramidCmd)
}
