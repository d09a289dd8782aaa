package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeMalformed   = "malformed"
)

// Metrics holds the Prometheus instruments for the scan pipeline.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	reg *prometheus.Registry

	ScansTotal       prometheus.Counter
	AnalysesTotal    *prometheus.CounterVec // labels: outcome
	DemoFallbacks    prometheus.Counter
	ScanDuration     prometheus.Histogram
	FetchDuration    prometheus.Histogram
	LastUptrendRatio prometheus.Gauge
}

// NewMetrics registers all instruments on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uptrend_scans_total",
			Help: "Total batch scans completed",
		}),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uptrend_symbol_analyses_total",
			Help: "Per-symbol analyses by outcome",
		}, []string{"outcome"}),
		DemoFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uptrend_demo_fallbacks_total",
			Help: "Analyses served from synthetic data",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "uptrend_scan_duration_seconds",
			Help:    "Wall time of a batch scan",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "uptrend_fetch_duration_seconds",
			Help:    "Data source latency per symbol",
			Buckets: prometheus.DefBuckets,
		}),
		LastUptrendRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "uptrend_last_scan_uptrend_ratio",
			Help: "Share of analyzed symbols in an uptrend on the last scan",
		}),
	}

	m.reg.MustRegister(
		m.ScansTotal,
		m.AnalysesTotal,
		m.DemoFallbacks,
		m.ScanDuration,
		m.FetchDuration,
		m.LastUptrendRatio,
	)
	return m
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

func (m *Metrics) ObserveAnalysis(outcome string) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveDemoFallback() {
	if m == nil {
		return
	}
	m.DemoFallbacks.Inc()
}

// ObserveScan records a finished batch. ratio is uptrend/analyzed, or 0 when nothing was analyzed.
func (m *Metrics) ObserveScan(d time.Duration, analyzed, uptrend int) {
	if m == nil {
		return
	}
	m.ScansTotal.Inc()
	m.ScanDuration.Observe(d.Seconds())
	ratio := 0.0
	if analyzed > 0 {
		ratio = float64(uptrend) / float64(analyzed)
	}
	m.LastUptrendRatio.Set(ratio)
}
