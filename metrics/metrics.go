// Package metrics holds the Prometheus collectors for uploads and analysis runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "insightmeet"

// Metrics is safe for concurrent use.
type Metrics struct {
	reg *prometheus.Registry

	UploadsTotal       *prometheus.CounterVec
	AnalysisSeconds    prometheus.Histogram
	Speakers           prometheus.Histogram
	CollaboratorErrors *prometheus.CounterVec
}

// New registers every collector on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,
		UploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Uploads handled, by outcome",
			},
			[]string{"status"},
		),
		AnalysisSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "Wall time of one upload-to-bundle analysis",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
			},
		),
		Speakers: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "speakers",
				Help:      "Distinct speakers per generated bundle",
				Buckets:   []float64{0, 1, 2, 3, 4, 6, 8, 12, 26},
			},
		),
		CollaboratorErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "collaborator_errors_total",
				Help:      "Failed calls to external services",
			},
			[]string{"service"},
		),
	}
}

func (m *Metrics) RecordUpload(status string) {
	m.UploadsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordAnalysis(d time.Duration, speakers int) {
	m.AnalysisSeconds.Observe(d.Seconds())
	m.Speakers.Observe(float64(speakers))
}

func (m *Metrics) RecordCollaboratorError(service string) {
	m.CollaboratorErrors.WithLabelValues(service).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
