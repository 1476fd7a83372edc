package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so several servers (and tests) can coexist in
// one process.
type Metrics struct {
	registry *prometheus.Registry
	renders  *prometheus.CounterVec
	pipeline prometheus.Histogram
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		renders: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bikeshare",
			Name:      "renders_total",
			Help:      "Dashboard renders by view and outcome.",
		}, []string{"view", "outcome"}),
		pipeline: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bikeshare",
			Name:      "pipeline_duration_seconds",
			Help:      "Time spent loading, filtering and aggregating one request.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
}

func (m *Metrics) observe(view string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.renders.WithLabelValues(view, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
