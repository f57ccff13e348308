package domain

import "math"

// Conversion constants, fixed by the revenue-record system.
const (
	SarshaiPerMarla = 9
	MarlaPerKanal   = 20
	KanalPerKila    = 8

	sarshaiPerKanal = SarshaiPerMarla * MarlaPerKanal // 180
	sarshaiPerKila  = sarshaiPerKanal * KanalPerKila  // 1440
)

// totalSarshai collapses a (kanal, marla) measurement into integer Sarshai,
// the finest unit. Fractional Marla converts to fractional Sarshai first and
// is rounded half-up at the Sarshai boundary; all later arithmetic is exact
// integer division, so the Sarshai→Marla→Kanal→Kila carry chain cannot drift.
func totalSarshai(kanal, marla float64) int64 {
	return int64(math.Floor(kanal*sarshaiPerKanal + marla*SarshaiPerMarla + 0.5))
}

// SplitSarshai carries a total Sarshai count out into Kila/Kanal/Marla/Sarshai.
func SplitSarshai(total int64) Area {
	kila := total / sarshaiPerKila
	rem := total % sarshaiPerKila

	kanal := rem / sarshaiPerKanal
	rem %= sarshaiPerKanal

	return Area{
		Kila:    kila,
		Kanal:   kanal,
		Marla:   rem / SarshaiPerMarla,
		Sarshai: rem % SarshaiPerMarla,
	}
}

// ConvertArea normalizes a raw (kanal, marla) measurement. Marla values of 20
// or more are legal input and simply carry upward.
func ConvertArea(kanal, marla float64) Area {
	return SplitSarshai(totalSarshai(kanal, marla))
}

// TotalSarshai reports an already-decomposed area as a single Sarshai count.
func (a Area) TotalSarshai() int64 {
	return a.Kila*sarshaiPerKila + a.Kanal*sarshaiPerKanal + a.Marla*SarshaiPerMarla + a.Sarshai
}

// ConvertRecord enriches a validated row with its derived area. Total over
// validated rows: the validator guarantees non-negative parsed measurements,
// so conversion cannot fail. Input fields are carried through unchanged.
func ConvertRecord(rec ValidatedRecord) LandRecord {
	return LandRecord{
		Khewat:      rec.Khewat,
		Khatoni:     rec.Khatoni,
		Khasra:      rec.Khasra,
		LandType:    rec.LandType,
		Irrigation:  rec.Irrigation,
		Kanal:       rec.Kanal,
		Marla:       rec.Marla,
		Area:        ConvertArea(rec.Kanal, rec.Marla),
		Extra:       rec.Extra,
		ProcessedAt: clock.Now(),
	}
}

// ConvertAll converts a validated batch, preserving input order.
func ConvertAll(recs []ValidatedRecord) []LandRecord {
	out := make([]LandRecord, len(recs))
	for i, rec := range recs {
		out[i] = ConvertRecord(rec)
	}
	return out
}

// Summarize computes batch grand totals: raw Kanal and Marla column sums and
// the combined area of all rows, carried out into all four units.
func Summarize(records []LandRecord) Summary {
	s := Summary{Records: len(records)}
	var total int64
	for _, rec := range records {
		s.TotalKanal += rec.Kanal
		s.TotalMarla += rec.Marla
		total += rec.Area.TotalSarshai()
	}
	s.Total = SplitSarshai(total)
	return s
}
