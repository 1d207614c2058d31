package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/worldpop-cli/internal/analysis"
	"github.com/KaramelBytes/worldpop-cli/internal/catalog"
)

// Header is the first CSV record.
var Header = []string{"Country", "Region", "Population"}

// WriteCSV writes rows in the given order under Header. Output uses "\n" line
// endings and is identical for identical input.
func WriteCSV(w io.Writer, rows []analysis.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	rec := make([]string, 3)
	for _, r := range rows {
		rec[0] = r.Country
		rec[1] = string(r.Region)
		rec[2] = strconv.FormatInt(r.Population, 10)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Country, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// EncodeCSV returns the CSV document for rows.
func EncodeCSV(rows []analysis.Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadCSV parses a document produced by WriteCSV.
func ReadCSV(r io.Reader) ([]analysis.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", ErrMalformedCSV)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range Header {
		if header[i] != h {
			return nil, fmt.Errorf("%w: header %v", ErrMalformedCSV, header)
		}
	}
	rows := []analysis.Row{}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		pop, err := strconv.ParseInt(rec[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d population %q", ErrMalformedCSV, len(rows)+1, rec[2])
		}
		rows = append(rows, analysis.Row{Country: rec[0], Region: catalog.Region(rec[1]), Population: pop})
	}
	return rows, nil
}
