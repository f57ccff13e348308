package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/jamabandi-etl/internal/domain"
)

// RecordTransformer implements Transformer for land-record rows: it parses a
// raw JSON row, runs the single-row schema check, converts the measurement,
// and serializes the enriched record.
type RecordTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates a RecordTransformer.
func NewTransformer(logger *slog.Logger) *RecordTransformer {
	return &RecordTransformer{logger: logger}
}

func (t *RecordTransformer) Transform(_ context.Context, raw domain.RawMessage) (domain.OutputMessage, error) {
	var rec domain.RawRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return domain.OutputMessage{}, fmt.Errorf("parse raw record: %w", err)
	}

	// Validate as a one-row table so the streaming path shares the exact
	// schema semantics of the upload path.
	validated, err := domain.Validate(domain.Table{
		Columns: domain.RequiredColumns(),
		Rows:    []domain.Row{rec.Row()},
	})
	if err != nil {
		return domain.OutputMessage{}, fmt.Errorf("validate record: %w", err)
	}

	record := domain.ConvertRecord(validated[0])

	value, err := json.Marshal(record)
	if err != nil {
		return domain.OutputMessage{}, fmt.Errorf("serialize land record: %w", err)
	}

	return domain.OutputMessage{
		Key:   raw.Key,
		Value: value,
		Headers: map[string]string{
			"khasra":       record.Khasra,
			"processed_at": record.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
