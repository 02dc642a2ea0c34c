package server

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/pathgrid/wire"
)

// Transport label values.
const (
	transportHTTP = "http"
	transportWS   = "ws"
)

// metrics holds the per-Server query instruments.
type metrics struct {
	registry *prometheus.Registry

	// queryTotal counts answered queries by transport and result
	// ("ok" or the error kind, e.g. "StartEqEnd").
	queryTotal *prometheus.CounterVec

	// queryDuration tracks query latency including validation.
	queryDuration *prometheus.HistogramVec

	// pathSteps tracks the length of returned paths.
	pathSteps prometheus.Histogram

	// wsSessions is the number of open websocket sessions.
	wsSessions prometheus.Gauge
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		queryTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pathgrid_query_total",
			Help: "Total path queries by transport and result",
		}, []string{"transport", "result"}),
		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathgrid_query_duration_seconds",
			Help:    "Path query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
		}, []string{"transport"}),
		pathSteps: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathgrid_path_steps",
			Help:    "Number of steps per returned path",
			Buckets: prometheus.ExponentialBuckets(2, 2, 12),
		}),
		wsSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pathgrid_ws_sessions",
			Help: "Open websocket sessions",
		}),
	}
}

// observe records one answered query.
func (m *metrics) observe(transport string, resp wire.Response, seconds float64) {
	m.queryDuration.WithLabelValues(transport).Observe(seconds)
	m.queryTotal.WithLabelValues(transport, resultLabel(resp)).Inc()
	if resp.OK() {
		m.pathSteps.Observe(float64(len(resp.Path.Steps)))
	}
}

// resultLabel maps a Response to "ok" or its bare error kind.
func resultLabel(resp wire.Response) string {
	if resp.OK() {
		return wire.StatusOK
	}
	return strings.TrimPrefix(resp.Comment, "[ERROR] ")
}
