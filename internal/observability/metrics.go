package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// conversion service.
type Metrics struct {
	RowsConverted    prometheus.Counter
	ValidationErrors *prometheus.CounterVec // labels: kind={missing_column,invalid_number}
	ConvertRequests  *prometheus.CounterVec // labels: format={csv,xlsx,docx}, outcome={success,invalid,error}

	// Streaming pipeline metrics.
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsConverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jamabandi_etl",
			Name:      "rows_converted_total",
			Help:      "Total land-record rows enriched with derived units.",
		}),
		ValidationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jamabandi_etl",
			Name:      "validation_errors_total",
			Help:      "Schema validation failures by kind.",
		}, []string{"kind"}),
		ConvertRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jamabandi_etl",
			Name:      "convert_requests_total",
			Help:      "HTTP convert requests by output format and outcome.",
		}, []string{"format", "outcome"}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jamabandi_etl",
			Name:      "messages_consumed_total",
			Help:      "Total messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jamabandi_etl",
			Name:      "messages_produced_total",
			Help:      "Total messages written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jamabandi_etl",
			Name:      "transform_errors_total",
			Help:      "Total transformation failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jamabandi_etl",
			Name:      "pipeline_running",
			Help:      "1 when the streaming pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jamabandi_etl",
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from the source topic.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jamabandi_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}

	prometheus.MustRegister(
		m.RowsConverted,
		m.ValidationErrors,
		m.ConvertRequests,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsConverted:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jamabandi_etl", Name: "rows_converted_total"}),
		ValidationErrors:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "jamabandi_etl", Name: "validation_errors_total"}, []string{"kind"}),
		ConvertRequests:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "jamabandi_etl", Name: "convert_requests_total"}, []string{"format", "outcome"}),
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jamabandi_etl", Name: "messages_consumed_total"}),
		MessagesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jamabandi_etl", Name: "messages_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jamabandi_etl", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "jamabandi_etl", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "jamabandi_etl", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "jamabandi_etl", Name: "batch_processing_duration_seconds"}),
	}
}
