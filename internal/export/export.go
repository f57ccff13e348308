// Package export serializes converted land records into the download
// formats. Exporters are formatting glue only: they consume enriched rows
// and an optional batch summary and never touch the arithmetic.
package export

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/couchcryptid/jamabandi-etl/internal/domain"
)

// Format identifies an output serialization.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatDOCX Format = "docx"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatXLSX, FormatDOCX:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want csv, xlsx, or docx)", s)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/csv; charset=utf-8"
	}
}

// extraColumns returns the sorted union of passthrough column names across
// the batch. Sorted so output layout is stable regardless of map order.
func extraColumns(records []domain.LandRecord) []string {
	seen := map[string]bool{}
	var cols []string
	for _, rec := range records {
		for col := range rec.Extra {
			if !seen[col] {
				seen[col] = true
				cols = append(cols, col)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

// header builds the output column layout: the seven schema columns, any
// passthrough extras, then the four derived columns.
func header(extras []string) []string {
	cols := domain.RequiredColumns()
	cols = append(cols, extras...)
	return append(cols,
		domain.ColOutKila, domain.ColOutKanal, domain.ColOutMarla, domain.ColOutSarshai)
}

// rowCells renders one record in header order.
func rowCells(rec domain.LandRecord, extras []string) []string {
	cells := []string{
		rec.Khewat, rec.Khatoni, rec.Khasra,
		rec.LandType, rec.Irrigation,
		formatNumber(rec.Kanal), formatNumber(rec.Marla),
	}
	for _, col := range extras {
		cells = append(cells, rec.Extra[col])
	}
	return append(cells,
		strconv.FormatInt(rec.Area.Kila, 10),
		strconv.FormatInt(rec.Area.Kanal, 10),
		strconv.FormatInt(rec.Area.Marla, 10),
		strconv.FormatInt(rec.Area.Sarshai, 10),
	)
}

// formatNumber renders a raw measurement without a trailing ".0" so whole
// values round-trip as entered ("19", "19.5").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// summaryLines renders the batch totals as label/value pairs, in the order
// the original extract workflow reports them.
func summaryLines(s domain.Summary) [][2]string {
	return [][2]string{
		{"Records", strconv.Itoa(s.Records)},
		{"Total Kanal (raw)", formatNumber(s.TotalKanal)},
		{"Total Marla (raw)", formatNumber(s.TotalMarla)},
		{"Kila", strconv.FormatInt(s.Total.Kila, 10)},
		{"Kanal", strconv.FormatInt(s.Total.Kanal, 10)},
		{"Marla", strconv.FormatInt(s.Total.Marla, 10)},
		{"Sarshai", strconv.FormatInt(s.Total.Sarshai, 10)},
	}
}
