package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/worldpop-cli/internal/analysis"
	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
	"github.com/xuri/excelize/v2"
)

// Sheet names besides the per-year selection sheet.
const (
	RegionsSheet = "Regions"
	GrowthSheet  = "Growth"
)

// Workbook is everything written to an XLSX export.
type Workbook struct {
	Year    int
	Rows    []analysis.Row
	Regions []analysis.RegionTotal
	Growth  []analysis.GrowthSummary
}

// SelectionSheet names the sheet holding the selected rows.
func SelectionSheet(year int) string { return fmt.Sprintf("Population %d", year) }

// WriteXLSX writes the selection, region totals and growth summaries as three
// sheets. The selection sheet is first and active.
func WriteXLSX(w io.Writer, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}

	sel := SelectionSheet(wb.Year)
	if err := f.SetSheetName("Sheet1", sel); err != nil {
		return fmt.Errorf("xlsx rename sheet: %w", err)
	}
	rows := make([][]any, len(wb.Rows))
	for i, r := range wb.Rows {
		rows[i] = []any{r.Country, string(r.Region), r.Population}
	}
	if err := writeTable(f, sel, bold, []any{"Country", "Region", "Population"}, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(RegionsSheet); err != nil {
		return fmt.Errorf("xlsx new sheet: %w", err)
	}
	rows = make([][]any, len(wb.Regions))
	for i, t := range wb.Regions {
		rows[i] = []any{string(t.Region), t.Year, t.Population}
	}
	if err := writeTable(f, RegionsSheet, bold, []any{"Region", "Year", "Population"}, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(GrowthSheet); err != nil {
		return fmt.Errorf("xlsx new sheet: %w", err)
	}
	rows = make([][]any, 0, len(wb.Growth))
	for _, g := range wb.Growth {
		growth := any(g.GrowthPct)
		if g.Undefined {
			growth = ""
		}
		rows = append(rows, []any{g.Country, string(g.Region),
			fmt.Sprintf("Population_%d", g.FirstYear), g.FirstPopulation,
			fmt.Sprintf("Population_%d", g.LastYear), g.LastPopulation, growth})
	}
	if err := writeTable(f, GrowthSheet, bold, []any{"Country", "Region", "First", "First Population", "Last", "Last Population", "Growth (%)"}, rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, headerStyle int, header []any, rows [][]any) error {
	cell, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return fmt.Errorf("xlsx %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell, last, headerStyle); err != nil {
		return fmt.Errorf("xlsx %s header style: %w", sheet, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("xlsx %s widths: %w", sheet, err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("xlsx %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// ReadXLSXRows reads the selection sheet of a workbook written by WriteXLSX.
func ReadXLSXRows(r io.Reader, year int) ([]analysis.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	recs, err := f.GetRows(SelectionSheet(year), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("xlsx sheet %s: missing header", SelectionSheet(year))
	}
	rows := []analysis.Row{}
	for i, rec := range recs[1:] {
		if len(rec) < 3 {
			return nil, fmt.Errorf("xlsx row %d: expected 3 cells, got %d", i+2, len(rec))
		}
		pop, err := strconv.ParseInt(rec[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("xlsx row %d population %q: %w", i+2, rec[2], err)
		}
		rows = append(rows, analysis.Row{Country: rec[0], Region: catalog.Region(rec[1]), Population: pop})
	}
	return rows, nil
}
