package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MissingColumnError reports required columns absent from an input table.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
}

// InvalidNumberError reports a measurement cell that is empty, unparseable,
// or negative. Row is the zero-based index into the table's row sequence.
type InvalidNumberError struct {
	Row    int
	Column string
	Value  string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("row %d: column %q: invalid number %q", e.Row, e.Column, e.Value)
}

// Validate checks a raw table against the fixed seven-column schema and
// parses the measurement columns. It fails fast: the first problem aborts
// the whole batch. Extra columns are tolerated and carried into the
// validated rows' Extra maps.
func Validate(table Table) ([]ValidatedRecord, error) {
	present := make(map[string]bool, len(table.Columns))
	for _, c := range table.Columns {
		present[c] = true
	}

	var missing []string
	for _, c := range RequiredColumns() {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}

	required := make(map[string]bool, 7)
	for _, c := range RequiredColumns() {
		required[c] = true
	}

	records := make([]ValidatedRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		kanal, err := parseMeasurement(i, ColKanal, row[ColKanal])
		if err != nil {
			return nil, err
		}
		marla, err := parseMeasurement(i, ColMarla, row[ColMarla])
		if err != nil {
			return nil, err
		}

		rec := ValidatedRecord{
			Khewat:     row[ColKhewat],
			Khatoni:    row[ColKhatoni],
			Khasra:     row[ColKhasra],
			LandType:   row[ColLandType],
			Irrigation: row[ColIrrigation],
			Kanal:      kanal,
			Marla:      marla,
		}
		for col, val := range row {
			if required[col] {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[col] = val
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseMeasurement parses a Kanal/Marla cell as a non-negative decimal.
func parseMeasurement(row int, column, value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, &InvalidNumberError{Row: row, Column: column, Value: value}
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InvalidNumberError{Row: row, Column: column, Value: value}
	}
	return v, nil
}
