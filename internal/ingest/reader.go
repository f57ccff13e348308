// Package ingest parses uploaded or pasted tabular text into a raw
// domain.Table. It owns the forgiving parts of input handling (separator
// detection, header normalization, Unicode normalization) so the core
// schema check can stay strict.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/couchcryptid/jamabandi-etl/internal/domain"
)

// Separator selects the cell delimiter for parsing.
type Separator rune

const (
	// Comma is the delimiter for CSV uploads.
	Comma Separator = ','
	// Tab is the delimiter for tables pasted from jamabandi.nic.in.
	Tab Separator = '\t'
)

// canonicalByFolded maps a case-folded, space-collapsed header to its
// canonical schema column name. "  kanal " and "KANAL" both land on "Kanal".
var canonicalByFolded = buildHeaderIndex()

func buildHeaderIndex() map[string]string {
	idx := make(map[string]string, 7)
	for _, col := range domain.RequiredColumns() {
		idx[foldHeader(col)] = col
	}
	return idx
}

// foldHeader lowercases a header and collapses internal runs of whitespace,
// so "type  of land" and "Type of Land" compare equal.
func foldHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

// ReadTable parses delimited text into a raw table. The first non-empty line
// is the header. Schema headers are restored to their canonical names;
// unknown headers are kept as-is and become passthrough columns. Cell text
// is NFC-normalized because pasted Devanagari often arrives with decomposed
// combining marks. Short rows are padded with empty cells; cells beyond the
// header are dropped.
func ReadTable(r io.Reader, sep Separator) (domain.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = rune(sep)
	cr.FieldsPerRecord = -1 // ragged rows handled below
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	lines, err := cr.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("parse table: %w", err)
	}

	var table domain.Table
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		if table.Columns == nil {
			table.Columns = canonicalizeHeader(line)
			continue
		}
		row := make(domain.Row, len(table.Columns))
		for i, col := range table.Columns {
			if i < len(line) {
				row[col] = norm.NFC.String(strings.TrimSpace(line[i]))
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if table.Columns == nil {
		return domain.Table{}, fmt.Errorf("parse table: no header line")
	}
	return table, nil
}

// ReadString parses an in-memory paste buffer.
func ReadString(s string, sep Separator) (domain.Table, error) {
	return ReadTable(strings.NewReader(s), sep)
}

// DetectSeparator guesses the delimiter from the first line of the input:
// any tab means a jamabandi.nic.in paste, otherwise CSV.
func DetectSeparator(s string) Separator {
	line, _, _ := strings.Cut(s, "\n")
	if strings.ContainsRune(line, rune(Tab)) {
		return Tab
	}
	return Comma
}

func canonicalizeHeader(line []string) []string {
	cols := make([]string, len(line))
	for i, h := range line {
		h = norm.NFC.String(strings.TrimSpace(h))
		if canonical, ok := canonicalByFolded[foldHeader(h)]; ok {
			h = canonical
		}
		cols[i] = h
	}
	return cols
}

func isBlank(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
