package cmd

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/worldpop-cli/internal/analysis"
	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	cfgpkg "github.com/KaramelBytes/worldpop-cli/internal/config"
	"github.com/KaramelBytes/worldpop-cli/internal/utils"
	"github.com/spf13/cobra"
)

// selectionFlags are the dashboard filters shared by view-like commands.
// Unset flags fall back to the configured defaults.
type selectionFlags struct {
	year      int
	countries []string
	regions   []string
	all       bool
}

func (s *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&s.year, "year", "y", 0, "year to display (default from config)")
	cmd.Flags().StringSliceVarP(&s.countries, "country", "c", nil, "country to include (repeatable)")
	cmd.Flags().StringSliceVarP(&s.regions, "region", "r", nil, "region to include (repeatable)")
	cmd.Flags().BoolVar(&s.all, "all", false, "ignore the configured country list and include every country")
}

func (s *selectionFlags) resolve(cmd *cobra.Command, c *cfgpkg.Global) (analysis.Selection, error) {
	sel := analysis.Selection{Year: c.Year}
	countries, names := c.Countries, c.Regions
	if cmd.Flags().Changed("year") {
		sel.Year = s.year
	}
	switch {
	case s.all:
		sel.Countries = nil
	case cmd.Flags().Changed("country"):
		sel.Countries = s.countries
	default:
		sel.Countries = countries
	}
	if cmd.Flags().Changed("region") {
		names = s.regions
	}
	regions, err := catalog.ParseRegions(names)
	if err != nil {
		return sel, fmt.Errorf("--region: %w", err)
	}
	sel.Regions = regions
	return sel, nil
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
