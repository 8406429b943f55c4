// Package observability holds the Prometheus metrics for validator runs and
// request rate limiting.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fieldcheck/internal/domain"
)

const metricsNamespace = "fieldcheck"

// Metrics holds all collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Labels: validator, status
	ValidatorRunsTotal *prometheus.CounterVec
	// Labels: validator
	ValidatorRunDurationSeconds *prometheus.HistogramVec
	JobPersistFailuresTotal     prometheus.Counter
	RateLimitRejectionsTotal    prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ValidatorRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "validator_runs_total",
				Help:      "Validator runs by validator id and resulting status",
			},
			[]string{"validator", "status"},
		),
		ValidatorRunDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "validator_run_duration_seconds",
				Help:      "Wall time spent executing a validator check",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"validator"},
		),
		JobPersistFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "validation_job_persist_failures_total",
				Help:      "Completed validator runs whose job record could not be written",
			},
		),
		RateLimitRejectionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "rate_limit_rejections_total",
				Help:      "Requests refused by the request rate limiter",
			},
		),
	}
}

// ObserveRun records one finished validator run.
func (m *Metrics) ObserveRun(id domain.ValidatorID, status domain.ValidationStatus, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ValidatorRunsTotal.WithLabelValues(string(id), string(status)).Inc()
	m.ValidatorRunDurationSeconds.WithLabelValues(string(id)).Observe(elapsed.Seconds())
}

// PersistFailed records a job that could not be written.
func (m *Metrics) PersistFailed() {
	if m == nil {
		return
	}
	m.JobPersistFailuresTotal.Inc()
}

// RateLimited records a refused request.
func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.RateLimitRejectionsTotal.Inc()
}
