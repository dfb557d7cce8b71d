package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RateMetrics holds the prometheus instruments for rate resolution. A nil
// *RateMetrics is valid and records nothing, so tests and callers that do
// not care about metrics can pass nil.
type RateMetrics struct {
	providerAttemptsTotal *prometheus.CounterVec
	providerFailuresTotal *prometheus.CounterVec
	cacheLookupsTotal     *prometheus.CounterVec
	resolutionsTotal      *prometheus.CounterVec
}

// NewRateMetrics registers the rate metrics on the default registerer.
func NewRateMetrics() *RateMetrics {
	return &RateMetrics{
		providerAttemptsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_provider_attempts_total",
				Help: "Provider calls attempted, per chain and provider",
			},
			[]string{"chain", "provider"},
		),
		providerFailuresTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_provider_failures_total",
				Help: "Provider calls that failed, per chain and provider",
			},
			[]string{"chain", "provider"},
		),
		cacheLookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_lookups_total",
				Help: "Cache lookups by result (hit, stale_hit, miss)",
			},
			[]string{"result"},
		),
		resolutionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_resolutions_total",
				Help: "Rate resolutions by outcome (provider, cache, stale_cache, error)",
			},
			[]string{"outcome"},
		),
	}
}

// ProviderAttempt records one provider call.
func (m *RateMetrics) ProviderAttempt(chain, provider string) {
	if m == nil {
		return
	}
	m.providerAttemptsTotal.WithLabelValues(chain, provider).Inc()
}

// ProviderFailure records one failed provider call.
func (m *RateMetrics) ProviderFailure(chain, provider string) {
	if m == nil {
		return
	}
	m.providerFailuresTotal.WithLabelValues(chain, provider).Inc()
}

// CacheLookup records a cache lookup result.
func (m *RateMetrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookupsTotal.WithLabelValues(result).Inc()
}

// Resolution records a finished resolution by outcome.
func (m *RateMetrics) Resolution(outcome string) {
	if m == nil {
		return
	}
	m.resolutionsTotal.WithLabelValues(outcome).Inc()
}
