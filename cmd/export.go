package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/KaramelBytes/worldpop-cli/internal/analysis"
	"github.com/KaramelBytes/worldpop-cli/internal/export"
	"github.com/KaramelBytes/worldpop-cli/internal/session"
	"github.com/KaramelBytes/worldpop-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	exportSel    selectionFlags
	exportYears  []int
	exportFormat string
	exportDir    string
	exportKeep   bool
	exportVerify bool
	exportQuiet  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered population table as CSV or XLSX",
	Long: `Export the filtered population table for one or more years. Each year is
written to population_data_{year}.csv (or .xlsx) in the export directory.
XLSX workbooks also carry the region totals and growth summaries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		sel, err := exportSel.resolve(cmd, c)
		if err != nil {
			return err
		}
		years := []int{sel.Year}
		if len(exportYears) > 0 {
			years = exportYears
		}
		name := c.ExportFormat
		if cmd.Flags().Changed("format") {
			name = exportFormat
		}
		format, err := export.ParseFormat(name)
		if err != nil {
			return err
		}
		dir := c.ExportDir
		if cmd.Flags().Changed("dir") {
			dir = exportDir
		}

		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		for _, y := range years {
			if err := analysis.ValidateYear(sess.Series(), y); err != nil {
				return fmt.Errorf("year %d: %w", y, err)
			}
		}

		total := len(years)
		for i, y := range years {
			sel.Year = y
			rows := analysis.Select(sess.Series(), sel)
			data, err := encodeExport(sess, sel.Year, rows, format)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, export.FileName(y, format))
			if exportKeep {
				path = utils.UniquePath(path)
			}
			if err := utils.SafeWriteFile(path, data); err != nil {
				return err
			}
			if exportVerify {
				written, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("verify %s: %w", path, err)
				}
				if err := verifyExport(written, y, format, rows); err != nil {
					return fmt.Errorf("verify %s: %w", path, err)
				}
			}
			if !exportQuiet {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] ✓ Wrote %s (%s)\n", i+1, total, path, export.MIMEType(format))
			}
		}
		return nil
	},
}

func encodeExport(sess *session.Session, year int, rows []analysis.Row, format export.Format) ([]byte, error) {
	switch format {
	case export.XLSX:
		var buf bytes.Buffer
		err := export.WriteXLSX(&buf, export.Workbook{
			Year:    year,
			Rows:    rows,
			Regions: sess.RegionTotals(),
			Growth:  sess.Summaries(),
		})
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return export.EncodeCSV(rows)
	}
}

// errExportMismatch reports a written file whose rows differ from the selection.
var errExportMismatch = errors.New("exported rows do not match the selection")

// verifyExport parses a written file and requires the same rows, in the same
// order, as the selection it was written from.
func verifyExport(data []byte, year int, format export.Format, want []analysis.Row) error {
	var (
		rows []analysis.Row
		err  error
	)
	if format == export.XLSX {
		rows, err = export.ReadXLSXRows(bytes.NewReader(data), year)
	} else {
		rows, err = export.ReadCSV(bytes.NewReader(data))
	}
	if err != nil {
		return err
	}
	if !slices.Equal(rows, want) {
		return fmt.Errorf("%w: read %d rows, expected %d", errExportMismatch, len(rows), len(want))
	}
	currentLogger().Debug("export verified", "year", year, "format", string(format), "rows", len(rows))
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportSel.register(exportCmd)
	exportCmd.Flags().IntSliceVar(&exportYears, "years", nil, "export several years at once (overrides --year)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "csv or xlsx (default from config)")
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "output directory (default from config)")
	exportCmd.Flags().BoolVar(&exportKeep, "keep-existing", false, "never overwrite; add a __N suffix when the file exists")
	exportCmd.Flags().BoolVar(&exportVerify, "verify", false, "read each file back after writing")
	exportCmd.Flags().BoolVarP(&exportQuiet, "quiet", "q", false, "suppress progress output")
}
