package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wavelength"

// Metrics owns a private registry so that each server (and each test) gets
// an isolated set of collectors.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	rateLimited       prometheus.Counter
	cacheLookups      *prometheus.CounterVec
	analyticsDuration *prometheus.HistogramVec
	journalWrites     *prometheus.CounterVec
}

func New() *Metrics {
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"method", "route"},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the per-client rate limiter.",
			},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "analytics_cache",
				Name:      "lookups_total",
				Help:      "Analytics cache lookups by endpoint and result.",
			},
			[]string{"endpoint", "result"},
		),
		analyticsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "analytics",
				Name:      "compute_duration_seconds",
				Help:      "Time spent computing analytics results on cache misses.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"endpoint"},
		),
		journalWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "journal",
				Name:      "writes_total",
				Help:      "Journal entries created, updated or deleted.",
			},
			[]string{"operation"},
		),
	}

	metrics.registry.MustRegister(
		metrics.httpRequests,
		metrics.httpDuration,
		metrics.rateLimited,
		metrics.cacheLookups,
		metrics.analyticsDuration,
		metrics.journalWrites,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return metrics
}

func (metrics *Metrics) Registry() *prometheus.Registry {
	return metrics.registry
}

// Handler exposes the registered collectors in the Prometheus text format.
func (metrics *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{})
}

func (metrics *Metrics) ObserveHTTPRequest(method string, route string, status int, elapsed time.Duration) {
	metrics.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	metrics.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (metrics *Metrics) RecordRateLimited() {
	metrics.rateLimited.Inc()
}

func (metrics *Metrics) RecordCacheLookup(endpoint string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	metrics.cacheLookups.WithLabelValues(endpoint, result).Inc()
}

func (metrics *Metrics) ObserveAnalytics(endpoint string, elapsed time.Duration) {
	metrics.analyticsDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (metrics *Metrics) RecordJournalWrite(operation string) {
	metrics.journalWrites.WithLabelValues(operation).Inc()
}

// RegisterCacheEntries exposes the live entry count of an in-process cache.
func (metrics *Metrics) RegisterCacheEntries(count func() int) error {
	return metrics.registry.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "analytics_cache",
			Name:      "entries",
			Help:      "Entries currently held by the in-process analytics cache.",
		},
		func() float64 {
			return float64(count())
		},
	))
}
