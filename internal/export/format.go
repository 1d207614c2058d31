// Package export writes selected population tables as CSV or XLSX.
package export

import (
	"errors"
	"fmt"
	"strings"
)

// Format is an export file format.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

const (
	MIMECSV  = "text/csv"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	// ErrUnsupportedFormat indicates an export format other than csv or xlsx.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrMalformedCSV indicates CSV input that does not match the export layout.
	ErrMalformedCSV = errors.New("malformed population csv")
)

// ParseFormat resolves a format name; empty defaults to CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return CSV, nil
	case "xlsx", "excel":
		return XLSX, nil
	default:
		return "", fmt.Errorf("%w: %s (use csv or xlsx)", ErrUnsupportedFormat, s)
	}
}

// FileName returns the suggested download name, e.g. population_data_2020.csv.
func FileName(year int, f Format) string {
	return fmt.Sprintf("population_data_%d.%s", year, f)
}

// MIMEType returns the content type for a format.
func MIMEType(f Format) string {
	if f == XLSX {
		return MIMEXLSX
	}
	return MIMECSV
}
