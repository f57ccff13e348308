// Command etl runs the land-record conversion service: an HTTP surface for
// uploads, pastes, and health/metrics, plus an optional Kafka pipeline that
// streams raw rows from a source topic to a sink topic as converted records.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/jamabandi-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/jamabandi-etl/internal/adapter/kafka"
	"github.com/couchcryptid/jamabandi-etl/internal/config"
	"github.com/couchcryptid/jamabandi-etl/internal/observability"
	"github.com/couchcryptid/jamabandi-etl/internal/pipeline"
)

// alwaysReady reports ready for upload-only deployments, where readiness
// means nothing more than the listener being up.
type alwaysReady struct{}

func (alwaysReady) CheckReadiness(context.Context) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ready httpadapter.ReadinessChecker = alwaysReady{}
	var reader *kafkaadapter.Reader
	var writer *kafkaadapter.Writer

	if cfg.KafkaEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		transformer := pipeline.NewTransformer(logger)

		p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)
		ready = p

		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
		logger.Info("kafka pipeline enabled",
			"source", cfg.KafkaSourceTopic, "sink", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka pipeline disabled, running upload-only")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, logger, metrics, cfg.MaxUploadBytes)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
