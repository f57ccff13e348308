// Package domain models Jamabandi land-record rows and the traditional
// Punjab-region area units they measure.
//
// # Data Source
//
// Rows come from Jamabandi (record-of-rights) extracts as published on
// jamabandi.nic.in. An extract is a seven-column table:
//
//	Khewat | Khatoni | Khasra | Type of Land | Source of Irrigation | Kanal | Marla
//
// Khewat, Khatoni, and Khasra are the ownership, holding, and plot numbers.
// They are opaque identifiers here: never parsed, only carried through.
// Type of Land and Source of Irrigation are free text, frequently Devanagari
// (e.g. "प्लाट"), and Source of Irrigation may be empty.
//
// # Units
//
// Area is recorded in Kanal and Marla and normalized into four units:
//
//	1 Kila  = 8 Kanal
//	1 Kanal = 20 Marla
//	1 Marla = 9 Sarshai
//
// Sarshai is the finest, indivisible unit, so conversion works on an integer
// Sarshai count: 180 Sarshai per Kanal, 1440 per Kila. A fractional Marla
// input (e.g. 19.5) becomes fractional Sarshai and is rounded half-up once,
// at the Sarshai boundary; everything after that is exact integer division,
// which fixes the carry order Sarshai→Marla→Kanal→Kila and keeps the
// derived fields inside their ranges (Kanal 0-7, Marla 0-19, Sarshai 0-8).
//
// Marla values of 20 or more are legal input (field staff often record a
// plot as 0 Kanal 25 Marla) and simply carry upward during decomposition.
//
// Converting a record's derived Kanal/Marla back through the converter as
// fresh input is not an identity: the derived fields are a remainder after
// Kila extraction, not a raw measurement. That asymmetry is inherent to the
// unit system, not a defect.
//
// # Validation
//
// [Validate] is the only gate into the converter. It checks the seven-column
// schema (extra columns pass through) and parses Kanal/Marla as non-negative
// decimals, failing fast with [MissingColumnError] or [InvalidNumberError].
// [ConvertRecord] is total over validated rows and cannot fail.
package domain
