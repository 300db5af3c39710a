package metrics

import (
	"net/http"
	"time"

	"github.com/flexprice/quoter/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics holds the Prometheus collectors of the service. Collectors are
// registered on a private registry so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Quote metrics
	QuotesTotal   *prometheus.CounterVec
	QuoteDuration *prometheus.HistogramVec
	QuoteWarnings *prometheus.CounterVec

	// Catalog metrics
	CatalogFetchTotal     *prometheus.CounterVec
	CatalogFetchDuration  *prometheus.HistogramVec
	CatalogRecords        *prometheus.GaugeVec
	CatalogIngestWarnings *prometheus.CounterVec

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors under the configured namespace
func NewMetrics(cfg *config.Configuration) *Metrics {
	namespace := cfg.Metrics.Namespace
	if namespace == "" {
		namespace = "quoter"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		QuotesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quotes_total",
				Help:      "Total number of quotes built",
			},
			[]string{"module", "edition", "payment_frequency", "status"},
		),
		QuoteDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "quote_duration_seconds",
				Help:      "Time to build a quote including catalog lookup",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"module"},
		),
		QuoteWarnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quote_unpriced_line_items_total",
				Help:      "Line items that degraded to a zero price",
			},
			[]string{"module", "plan_type"},
		),

		CatalogFetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_fetch_total",
				Help:      "Total number of catalog fetches from the source",
			},
			[]string{"module", "source", "status"},
		),
		CatalogFetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "catalog_fetch_duration_seconds",
				Help:      "Catalog fetch duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"module", "source"},
		),
		CatalogRecords: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_records",
				Help:      "Number of price records in the current catalog",
			},
			[]string{"module", "payment_frequency"},
		),
		CatalogIngestWarnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_ingest_warnings_total",
				Help:      "Catalog records that were coerced or skipped during ingestion",
			},
			[]string{"module"},
		),

		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of cache hits",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of cache misses",
			},
			[]string{"cache"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.QuotesTotal,
		m.QuoteDuration,
		m.QuoteWarnings,
		m.CatalogFetchTotal,
		m.CatalogFetchDuration,
		m.CatalogRecords,
		m.CatalogIngestWarnings,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// Registry returns the registry the collectors are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveQuote records a quote attempt
func (m *Metrics) ObserveQuote(module, edition, frequency string, err error, started time.Time) {
	m.QuotesTotal.WithLabelValues(module, edition, frequency, status(err)).Inc()
	m.QuoteDuration.WithLabelValues(module).Observe(time.Since(started).Seconds())
}

// ObserveCatalogFetch records a fetch from the catalog source
func (m *Metrics) ObserveCatalogFetch(module, source string, err error, started time.Time) {
	m.CatalogFetchTotal.WithLabelValues(module, source, status(err)).Inc()
	m.CatalogFetchDuration.WithLabelValues(module, source).Observe(time.Since(started).Seconds())
}

// ObserveCache records a cache lookup
func (m *Metrics) ObserveCache(cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
