package cmd

import (
	"fmt"

	"github.com/KaramelBytes/worldpop-cli/internal/analysis"
	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	"github.com/spf13/cobra"
)

var countriesRegions []string

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Default()
		if err != nil {
			return err
		}
		regions, err := catalog.ParseRegions(countriesRegions)
		if err != nil {
			return fmt.Errorf("--region: %w", err)
		}
		keep := map[catalog.Region]bool{}
		for _, r := range regions {
			keep[r] = true
		}
		profiles := make([]catalog.CountryProfile, 0, cat.Len())
		for _, p := range cat.Profiles() {
			if len(keep) > 0 && !keep[p.Region] {
				continue
			}
			profiles = append(profiles, p)
		}
		if jsonOut {
			return printJSON(cmd.OutOrStdout(), profiles)
		}
		if len(profiles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "(no countries)")
			return nil
		}
		for _, p := range profiles {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s (%s, base %s, %s)\n",
				p.Name, p.Region, analysis.FormatPopulation(p.BasePopulation), p.AgeStructure)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countriesCmd)
	countriesCmd.Flags().StringSliceVarP(&countriesRegions, "region", "r", nil, "only list countries in these regions")
}
