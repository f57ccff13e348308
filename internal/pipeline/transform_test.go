package pipeline_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/jamabandi-etl/internal/domain"
	"github.com/couchcryptid/jamabandi-etl/internal/pipeline"
)

func TestRecordTransformer(t *testing.T) {
	frozen := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	tfm := pipeline.NewTransformer(slog.Default())

	t.Run("valid record", func(t *testing.T) {
		raw := domain.RawMessage{
			Key:   []byte("rec-1"),
			Value: []byte(`{"Khewat":"594","Khatoni":"846","Khasra":"0//303","Type of Land":"प्लाट","Source of Irrigation":"","Kanal":"9","Marla":"21"}`),
		}

		out, err := tfm.Transform(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, []byte("rec-1"), out.Key)
		assert.Equal(t, "0//303", out.Headers["khasra"])
		assert.Equal(t, frozen.Format(time.RFC3339), out.Headers["processed_at"])

		var rec domain.LandRecord
		require.NoError(t, json.Unmarshal(out.Value, &rec))
		assert.Equal(t, "594", rec.Khewat)
		assert.Equal(t, "प्लाट", rec.LandType)
		assert.Equal(t, 9.0, rec.Kanal)
		assert.Equal(t, 21.0, rec.Marla)
		assert.Equal(t, domain.Area{Kila: 1, Kanal: 2, Marla: 1}, rec.Area)
		assert.Equal(t, frozen, rec.ProcessedAt)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := tfm.Transform(context.Background(), domain.RawMessage{Value: []byte("{bad")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse raw record")
	})

	t.Run("unparseable marla", func(t *testing.T) {
		raw := domain.RawMessage{
			Value: []byte(`{"Khewat":"594","Khatoni":"846","Khasra":"0//303","Type of Land":"plot","Source of Irrigation":"","Kanal":"0","Marla":"abc"}`),
		}

		_, err := tfm.Transform(context.Background(), raw)
		require.Error(t, err)

		var invalid *domain.InvalidNumberError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, domain.ColMarla, invalid.Column)
	})

	t.Run("missing measurement cell", func(t *testing.T) {
		raw := domain.RawMessage{
			Value: []byte(`{"Khewat":"594","Khasra":"0//303"}`),
		}

		_, err := tfm.Transform(context.Background(), raw)
		require.Error(t, err)

		var invalid *domain.InvalidNumberError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, domain.ColKanal, invalid.Column)
	})
}
