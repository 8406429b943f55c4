package observability_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"fieldcheck/internal/domain"
	"fieldcheck/internal/observability"
)

func TestMetrics_ObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.ObserveRun(domain.ValidatorWatchlistScreening, domain.StatusFail, 120*time.Millisecond)
	m.ObserveRun(domain.ValidatorWatchlistScreening, domain.StatusFail, 80*time.Millisecond)
	m.ObserveRun(domain.ValidatorTaxIDLookup, domain.StatusError, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ValidatorRunsTotal.WithLabelValues("watchlist_screening", "fail")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidatorRunsTotal.WithLabelValues("tax_id_lookup", "error")))
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.PersistFailed()
	m.RateLimited()
	m.RateLimited()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobPersistFailuresTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RateLimitRejectionsTotal))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.ObserveRun(domain.ValidatorTaxIDLookup, domain.StatusSuccess, time.Millisecond)
		m.PersistFailed()
		m.RateLimited()
	})
}
