package cmd

import (
	"fmt"

	"github.com/KaramelBytes/worldpop-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	viewSel    selectionFlags
	viewTopN   int
	viewOutput string
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the dashboard for a year and a set of filters",
	Long: `Show the dashboard for one selection: world population with the change
against five years earlier, the filtered population table, region totals and
the top growth ranking. Filters come from --country/--region or the config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		sel, err := viewSel.resolve(cmd, c)
		if err != nil {
			return err
		}
		topN := c.TopN
		if cmd.Flags().Changed("top") {
			topN = viewTopN
		}
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		v, err := sess.View(cmd.Context(), sel, topN)
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(cmd.OutOrStdout(), v)
		}
		md := v.Report(fmt.Sprintf("session %s", sess.ID[:8])).Markdown()
		if viewOutput == "" {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		if err := utils.SafeWriteFile(viewOutput, []byte(md)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", viewOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewSel.register(viewCmd)
	viewCmd.Flags().IntVar(&viewTopN, "top", 0, "number of countries in the growth ranking (default from config)")
	viewCmd.Flags().StringVarP(&viewOutput, "output", "o", "", "write the report to a file instead of stdout")
}
