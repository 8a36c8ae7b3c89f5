package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes recorded by RegistryMetrics.
const (
	outcomeResolved   = "resolved"
	outcomeUnresolved = "unresolved"
	outcomeInvalid    = "invalid"
	outcomeCached     = "cached"
)

// RegistryMetrics counts CNPJ lookups and searches.
type RegistryMetrics struct {
	LookupsTotal     *prometheus.CounterVec // by source and outcome
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
	SearchesTotal    *prometheus.CounterVec // by whether any item came back
}

// NewRegistryMetrics registers the registry metrics with reg.
func NewRegistryMetrics(reg prometheus.Registerer) *RegistryMetrics {
	factory := promauto.With(reg)
	return &RegistryMetrics{
		LookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salesroutes_registry_lookups_total",
			Help: "CNPJ lookups by answering source and outcome",
		}, []string{"source", "outcome"}),
		CacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "salesroutes_registry_cache_hits_total",
			Help: "CNPJ lookups answered from the record cache",
		}),
		CacheMissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "salesroutes_registry_cache_misses_total",
			Help: "CNPJ lookups not found in the record cache",
		}),
		SearchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salesroutes_registry_searches_total",
			Help: "Registry address searches by result",
		}, []string{"result"}),
	}
}

func (m *RegistryMetrics) lookup(source, outcome string) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(source, outcome).Inc()
}

func (m *RegistryMetrics) cache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.Inc()
		return
	}
	m.CacheMissesTotal.Inc()
}

func (m *RegistryMetrics) search(found bool) {
	if m == nil {
		return
	}
	result := "empty"
	if found {
		result = "found"
	}
	m.SearchesTotal.WithLabelValues(result).Inc()
}
