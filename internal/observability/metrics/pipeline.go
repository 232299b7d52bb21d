package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmittelstaedt/faxsort/internal/core/domain"
)

// PipelineMetrics tracks per-document pipeline outcomes on a private
// registry, served in watch mode.
type PipelineMetrics struct {
	registry *prometheus.Registry

	documentsTotal   *prometheus.CounterVec
	documentDuration *prometheus.HistogramVec
	inFlight         prometheus.Gauge
}

func NewPipelineMetrics() *PipelineMetrics {
	registry := prometheus.NewRegistry()

	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "faxsort",
			Subsystem: "pipeline",
			Name:      "documents_total",
			Help:      "Processed documents by terminal status.",
		},
		[]string{"status"},
	)
	documentDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "faxsort",
			Subsystem: "pipeline",
			Name:      "document_duration_seconds",
			Help:      "Per-document processing duration by terminal status.",
			// Vision inference on local hardware dominates; buckets reach
			// into the minutes.
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 180, 300},
		},
		[]string{"status"},
	)
	inFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "faxsort",
			Subsystem: "pipeline",
			Name:      "documents_in_flight",
			Help:      "Documents currently being processed (0 or 1).",
		},
	)

	registry.MustRegister(documentsTotal, documentDuration, inFlight)

	return &PipelineMetrics{
		registry:         registry,
		documentsTotal:   documentsTotal,
		documentDuration: documentDuration,
		inFlight:         inFlight,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) StartDocument() {
	m.inFlight.Inc()
}

func (m *PipelineMetrics) FinishDocument(status domain.Status, seconds float64) {
	m.inFlight.Dec()
	m.documentsTotal.WithLabelValues(string(status)).Inc()
	m.documentDuration.WithLabelValues(string(status)).Observe(seconds)
}
