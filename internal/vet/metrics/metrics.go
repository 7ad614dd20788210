package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks vet list cache effectiveness.
type Metrics struct {
	CacheLookups *prometheus.CounterVec
	CacheOpen    prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "petclinic_vets_cache_lookups_total",
			Help: "Vet list cache lookups by result",
		}, []string{"result"}), // hit, miss, error, bypass
		CacheOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "petclinic_vets_cache_circuit_open",
			Help: "1 while the vet cache circuit breaker is open",
		}),
	}
}

func (m *Metrics) IncrementCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) SetCacheOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CacheOpen.Set(1)
		return
	}
	m.CacheOpen.Set(0)
}
