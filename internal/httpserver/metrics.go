package httpserver

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the service's Prometheus instruments on a private registry
// so multiple servers (tests) never fight over the default one.
type metrics struct {
	registry *prometheus.Registry
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	renders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "html2pdf_renders_total",
		Help: "Render requests by mode and outcome.",
	}, []string{"mode", "status"})
	registry.MustRegister(renders)

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "html2pdf_render_duration_seconds",
		Help:    "End-to-end render latency by mode.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	}, []string{"mode"})
	registry.MustRegister(duration)

	return &metrics{
		registry: registry,
		renders:  renders,
		duration: duration,
	}
}

func (m *metrics) observe(mode string, err error, elapsed time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.renders.WithLabelValues(mode, status).Inc()
	if err == nil {
		m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
