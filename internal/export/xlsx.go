package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/jamabandi-etl/internal/domain"
)

const (
	recordsSheet = "Records"
	summarySheet = "Summary"
)

// WriteXLSX serializes the batch as a workbook: a Records sheet with the
// full column layout and, when summary is non-nil, a Summary sheet with the
// batch totals.
func WriteXLSX(w io.Writer, records []domain.LandRecord, summary *domain.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	extras := extraColumns(records)
	if err := setStringRow(f, recordsSheet, 1, header(extras)); err != nil {
		return err
	}
	for i, rec := range records {
		if err := setStringRow(f, recordsSheet, i+2, rowCells(rec, extras)); err != nil {
			return err
		}
	}

	if summary != nil {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return fmt.Errorf("write xlsx summary: %w", err)
		}
		for i, line := range summaryLines(*summary) {
			if err := setStringRow(f, summarySheet, i+1, []string{line[0], line[1]}); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setStringRow(f *excelize.File, sheet string, row int, cells []string) error {
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("write xlsx row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write xlsx row %d: %w", row, err)
	}
	return nil
}
