package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the engine's Prometheus collectors.
type Metrics struct {
	FetchTotal         *prometheus.CounterVec
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	SyntheticFallbacks prometheus.Counter
	PricingTotal       prometheus.Counter
}

// New creates and registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "experience_engine",
			Name:      "source_fetch_total",
			Help:      "Adapter fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "experience_engine",
			Name:      "event_cache_hits_total",
			Help:      "Result cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "experience_engine",
			Name:      "event_cache_misses_total",
			Help:      "Result cache misses.",
		}),
		SyntheticFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "experience_engine",
			Name:      "synthetic_fallback_total",
			Help:      "Aggregations that fell back to the synthetic event set.",
		}),
		PricingTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "experience_engine",
			Name:      "pricing_computations_total",
			Help:      "Pricing adjustments computed.",
		}),
	}
	reg.MustRegister(m.FetchTotal, m.CacheHits, m.CacheMisses, m.SyntheticFallbacks, m.PricingTotal)
	return m
}
