package domain

import "time"

// Canonical input column names, as they appear in Jamabandi extracts.
// Presence of all seven is mandatory and matching is exact here; boundary
// adapters normalize case and whitespace before the core sees a table.
const (
	ColKhewat     = "Khewat"
	ColKhatoni    = "Khatoni"
	ColKhasra     = "Khasra"
	ColLandType   = "Type of Land"
	ColIrrigation = "Source of Irrigation"
	ColKanal      = "Kanal"
	ColMarla      = "Marla"
)

// Derived output column names appended by the converter.
const (
	ColOutKila    = "Kila"
	ColOutKanal   = "Kanal(out)"
	ColOutMarla   = "Marla(out)"
	ColOutSarshai = "Sarshai"
)

// RequiredColumns lists the mandatory input columns in display order.
func RequiredColumns() []string {
	return []string{
		ColKhewat, ColKhatoni, ColKhasra,
		ColLandType, ColIrrigation,
		ColKanal, ColMarla,
	}
}

// Row is one raw table row: column name to raw cell text, as ingested from
// paste/CSV/upload sources. Extra columns ride along untouched.
type Row map[string]string

// Table is an ordered sequence of raw rows plus the column order observed at
// the source, so exports can reproduce it.
type Table struct {
	Columns []string
	Rows    []Row
}

// RawRecord is the flat JSON structure carried on the source Kafka topic.
// Keys match the extract's column headers so upstream publishers can emit
// rows verbatim.
type RawRecord struct {
	Khewat     string `json:"Khewat"`
	Khatoni    string `json:"Khatoni"`
	Khasra     string `json:"Khasra"`
	LandType   string `json:"Type of Land"`
	Irrigation string `json:"Source of Irrigation"`
	Kanal      string `json:"Kanal"`
	Marla      string `json:"Marla"`
}

// Row converts the record into a single-row table form for validation.
func (r RawRecord) Row() Row {
	return Row{
		ColKhewat:     r.Khewat,
		ColKhatoni:    r.Khatoni,
		ColKhasra:     r.Khasra,
		ColLandType:   r.LandType,
		ColIrrigation: r.Irrigation,
		ColKanal:      r.Kanal,
		ColMarla:      r.Marla,
	}
}

// ValidatedRecord is a row that passed schema validation: identifying fields
// are opaque passthrough strings, measurements are parsed non-negative numbers.
type ValidatedRecord struct {
	Khewat     string
	Khatoni    string
	Khasra     string
	LandType   string
	Irrigation string

	Kanal float64
	Marla float64

	// Extra holds tolerated non-schema columns, passed through to exports.
	Extra map[string]string
}

// Area is a fully carried-out measurement in the four traditional units.
type Area struct {
	Kila    int64 `json:"kila"`
	Kanal   int64 `json:"kanal"`   // 0..7
	Marla   int64 `json:"marla"`   // 0..19
	Sarshai int64 `json:"sarshai"` // 0..8
}

// LandRecord is the enriched row: every input field unchanged plus the
// derived area decomposition.
type LandRecord struct {
	Khewat     string `json:"khewat"`
	Khatoni    string `json:"khatoni"`
	Khasra     string `json:"khasra"`
	LandType   string `json:"land_type"`
	Irrigation string `json:"irrigation_source,omitempty"`

	Kanal float64 `json:"kanal"`
	Marla float64 `json:"marla"`

	Area Area `json:"area"`

	Extra map[string]string `json:"extra,omitempty"`

	ProcessedAt time.Time `json:"processed_at"`
}

// Summary aggregates a converted batch: raw column sums plus the combined
// area carried out into all four units.
type Summary struct {
	Records    int     `json:"records"`
	TotalKanal float64 `json:"total_kanal"`
	TotalMarla float64 `json:"total_marla"`
	Total      Area    `json:"total"`
}
