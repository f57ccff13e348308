package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	httpadapter "github.com/couchcryptid/jamabandi-etl/internal/adapter/http"
	"github.com/couchcryptid/jamabandi-etl/internal/observability"
)

const sampleCSV = "Khewat,Khatoni,Khasra,Type of Land,Source of Irrigation,Kanal,Marla\n" +
	"594,846,0//303,plot,,0,19\n" +
	"594,846,0//492,pits,,8,3\n"

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr},
		slog.Default(), observability.NewMetricsForTesting(), 1<<20)
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(fmt.Errorf("not ready yet"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready yet", body["error"])
}

func TestConvert_CSVHappyPath(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/convert", strings.NewReader(sampleCSV))
	req.Header.Set("Content-Type", "text/csv")

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "jamabandi_converted.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Khewat,Khatoni,Khasra,Type of Land,Source of Irrigation,Kanal,Marla,Kila,Kanal(out),Marla(out),Sarshai", lines[0])
	assert.Equal(t, "594,846,0//303,plot,,0,19,0,0,19,0", lines[1])
	assert.Equal(t, "594,846,0//492,pits,,8,3,1,0,3,0", lines[2])
}

func TestConvert_TSVPasteWithSummary(t *testing.T) {
	tsv := strings.ReplaceAll(sampleCSV, ",", "\t")

	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/convert?summary=true", strings.NewReader(tsv))

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Records,2")
	assert.Contains(t, rec.Body.String(), "Total Marla (raw),22")
}

func TestConvert_XLSX(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/convert?format=xlsx", strings.NewReader(sampleCSV))
	req.Header.Set("Content-Type", "text/csv")

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Records")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestConvert_MissingColumn(t *testing.T) {
	noKhasra := "Khewat,Khatoni,Type of Land,Source of Irrigation,Kanal,Marla\n" +
		"594,846,plot,,0,19\n"

	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/convert", strings.NewReader(noKhasra))
	req.Header.Set("Content-Type", "text/csv")

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "missing_column", body["kind"])
	assert.Equal(t, []any{"Khasra"}, body["columns"])
}

func TestConvert_InvalidNumber(t *testing.T) {
	badMarla := strings.Replace(sampleCSV, "0,19", "0,abc", 1)

	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/convert", strings.NewReader(badMarla))
	req.Header.Set("Content-Type", "text/csv")

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_number", body["kind"])
	assert.Equal(t, float64(0), body["row"])
	assert.Equal(t, "Marla", body["column"])
	assert.Equal(t, "abc", body["value"])
}

func TestConvert_UnknownFormat(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/convert?format=pdf", strings.NewReader(sampleCSV))

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvert_BodyTooLarge(t *testing.T) {
	srv := httpadapter.NewServer(":0", &mockReadiness{}, slog.Default(),
		observability.NewMetricsForTesting(), 16)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/convert", strings.NewReader(sampleCSV))

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
