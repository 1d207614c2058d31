package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/worldpop-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var trendSel selectionFlags

var trendCmd = &cobra.Command{
	Use:   "series",
	Short: "Print the population trend of the selected countries",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		sel, err := trendSel.resolve(cmd, c)
		if err != nil {
			return err
		}
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		lines := analysis.Trend(sess.Series(), analysis.ResolveCountries(sess.Series(), sel.Countries, sel.Regions))
		if jsonOut {
			return printJSON(cmd.OutOrStdout(), lines)
		}
		if len(lines) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "(no countries match the current filters)")
			return nil
		}
		out := cmd.OutOrStdout()
		for _, l := range lines {
			fmt.Fprintf(out, "%s (%s)\n", l.Country, l.Region)
			cells := make([]string, len(l.Points))
			for i, p := range l.Points {
				cells[i] = fmt.Sprintf("%d=%s", p.Year, analysis.FormatPopulation(p.Population))
			}
			fmt.Fprintf(out, "  %s\n", strings.Join(cells, "  "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trendCmd)
	trendSel.register(trendCmd)
	// The trend covers every year.
	_ = trendCmd.Flags().MarkHidden("year")
}
