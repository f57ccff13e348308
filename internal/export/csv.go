package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/couchcryptid/jamabandi-etl/internal/domain"
)

// WriteCSV serializes the batch as UTF-8 CSV: schema columns, passthrough
// extras, then the four derived columns. When summary is non-nil the totals
// are appended after a blank record, mirroring the downloadable extract the
// original workflow produced.
func WriteCSV(w io.Writer, records []domain.LandRecord, summary *domain.Summary) error {
	cw := csv.NewWriter(w)
	extras := extraColumns(records)

	if err := cw.Write(header(extras)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(rowCells(rec, extras)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if summary != nil {
		if err := cw.Write([]string{""}); err != nil {
			return fmt.Errorf("write csv summary: %w", err)
		}
		for _, line := range summaryLines(*summary) {
			if err := cw.Write([]string{line[0], line[1]}); err != nil {
				return fmt.Errorf("write csv summary: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
