package export

import (
	"fmt"
	"io"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/couchcryptid/jamabandi-etl/internal/domain"
)

// WriteDOCX serializes the batch as a Word document: a title, one line per
// record in column order, and the totals block when summary is non-nil.
// Cells are separated with " | " rather than a real table.
func WriteDOCX(w io.Writer, records []domain.LandRecord, summary *domain.Summary) error {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText("Jamabandi Land Area Conversion").Size("32")

	extras := extraColumns(records)
	doc.AddParagraph().AddText(strings.Join(header(extras), " | ")).Size("20")
	for _, rec := range records {
		doc.AddParagraph().AddText(strings.Join(rowCells(rec, extras), " | "))
	}

	if summary != nil {
		doc.AddParagraph() // spacer
		doc.AddParagraph().AddText("Totals").Size("28")
		for _, line := range summaryLines(*summary) {
			doc.AddParagraph().AddText(line[0] + ": " + line[1])
		}
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
