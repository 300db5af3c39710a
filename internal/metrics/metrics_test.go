package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flexprice/quoter/internal/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics(config.GetDefaultConfig())

	m.ObserveQuote("cf", "TEAM", "MONTHLY", nil, time.Now())
	m.ObserveQuote("cf", "TEAM", "MONTHLY", errors.New("boom"), time.Now())
	m.ObserveCatalogFetch("ci", "file", nil, time.Now())
	m.ObserveCache("catalog", true)
	m.ObserveCache("catalog", false)
	m.ObserveCache("catalog", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuotesTotal.WithLabelValues("cf", "TEAM", "MONTHLY", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuotesTotal.WithLabelValues("cf", "TEAM", "MONTHLY", StatusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogFetchTotal.WithLabelValues("ci", "file", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("catalog")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("catalog")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(config.GetDefaultConfig())
	m.ObserveQuote("ci", "ENTERPRISE", "YEARLY", nil, time.Now())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `quoter_quotes_total{edition="ENTERPRISE",module="ci",payment_frequency="YEARLY",status="success"} 1`)
}

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(config.GetDefaultConfig())
		NewMetrics(config.GetDefaultConfig())
	})
}
