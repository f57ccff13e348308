// Package http exposes the service's HTTP surface: health, readiness,
// metrics, and the synchronous convert endpoint used for uploads and pastes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/jamabandi-etl/internal/domain"
	"github.com/couchcryptid/jamabandi-etl/internal/export"
	"github.com/couchcryptid/jamabandi-etl/internal/ingest"
	"github.com/couchcryptid/jamabandi-etl/internal/observability"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and convert HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	metrics    *observability.Metrics
	maxBody    int64
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /v1/convert routes.
func NewServer(addr string, ready ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics, maxBody int64) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:  logger,
		metrics: metrics,
		maxBody: maxBody,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/convert", s.handleConvert)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleConvert runs the full upload path: parse the body as a delimited
// table, validate the schema, convert every row, and serialize in the
// requested format. Validation failures come back as 400 with row/column
// context so the caller can fix the offending cell.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(queryOrDefault(r, "format", string(export.FormatCSV)))
	if err != nil {
		s.metrics.ConvertRequests.WithLabelValues("unknown", "invalid").Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxBody+1))
	if err != nil {
		s.metrics.ConvertRequests.WithLabelValues(string(format), "error").Inc()
		writeError(w, http.StatusBadRequest, fmt.Errorf("read request body: %w", err))
		return
	}
	if int64(len(body)) > s.maxBody {
		s.metrics.ConvertRequests.WithLabelValues(string(format), "invalid").Inc()
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("body exceeds %d bytes", s.maxBody))
		return
	}

	sep, err := resolveSeparator(r, string(body))
	if err != nil {
		s.metrics.ConvertRequests.WithLabelValues(string(format), "invalid").Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}

	table, err := ingest.ReadString(string(body), sep)
	if err != nil {
		s.metrics.ConvertRequests.WithLabelValues(string(format), "invalid").Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}

	validated, err := domain.Validate(table)
	if err != nil {
		s.countValidationError(err)
		s.metrics.ConvertRequests.WithLabelValues(string(format), "invalid").Inc()
		s.writeValidationError(w, err)
		return
	}

	records := domain.ConvertAll(validated)
	s.metrics.RowsConverted.Add(float64(len(records)))

	var summary *domain.Summary
	if r.URL.Query().Get("summary") == "true" {
		v := domain.Summarize(records)
		summary = &v
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="jamabandi_converted.`+string(format)+`"`)

	switch format {
	case export.FormatXLSX:
		err = export.WriteXLSX(w, records, summary)
	case export.FormatDOCX:
		err = export.WriteDOCX(w, records, summary)
	default:
		err = export.WriteCSV(w, records, summary)
	}
	if err != nil {
		// Headers are already gone; all we can do is log and count.
		s.logger.Error("convert response write failed", "format", format, "error", err)
		s.metrics.ConvertRequests.WithLabelValues(string(format), "error").Inc()
		return
	}

	s.metrics.ConvertRequests.WithLabelValues(string(format), "success").Inc()
}

// resolveSeparator honors an explicit ?sep= override, then the Content-Type,
// then falls back to sniffing the first line.
func resolveSeparator(r *http.Request, body string) (ingest.Separator, error) {
	switch r.URL.Query().Get("sep") {
	case "tab":
		return ingest.Tab, nil
	case "comma":
		return ingest.Comma, nil
	case "":
	default:
		return 0, fmt.Errorf("unknown sep %q (want tab or comma)", r.URL.Query().Get("sep"))
	}

	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "text/tab-separated-values"):
		return ingest.Tab, nil
	case strings.HasPrefix(ct, "text/csv"):
		return ingest.Comma, nil
	}
	return ingest.DetectSeparator(body), nil
}

func (s *Server) countValidationError(err error) {
	var missing *domain.MissingColumnError
	if errors.As(err, &missing) {
		s.metrics.ValidationErrors.WithLabelValues("missing_column").Inc()
		return
	}
	s.metrics.ValidationErrors.WithLabelValues("invalid_number").Inc()
}

// writeValidationError renders the validator's taxonomy as structured JSON.
func (s *Server) writeValidationError(w http.ResponseWriter, err error) {
	resp := map[string]any{"error": err.Error()}

	var missing *domain.MissingColumnError
	var invalid *domain.InvalidNumberError
	switch {
	case errors.As(err, &missing):
		resp["kind"] = "missing_column"
		resp["columns"] = missing.Columns
	case errors.As(err, &invalid):
		resp["kind"] = "invalid_number"
		resp["row"] = invalid.Row
		resp["column"] = invalid.Column
		resp["value"] = invalid.Value
	}

	writeJSON(w, http.StatusBadRequest, resp)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func queryOrDefault(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
