package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the owner workflow.
type Metrics struct {
	// Navigation outcomes by operation and outcome kind
	Outcomes *prometheus.CounterVec

	// Submissions rejected by validation, by field
	RejectedFields *prometheus.CounterVec
}

// New creates and registers the owner metrics.
func New() *Metrics {
	return &Metrics{
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "petclinic_owner_outcomes_total",
			Help: "Navigation outcomes produced by owner operations",
		}, []string{"operation", "outcome"}), // operation: "search", "submit", "edit", "show"

		RejectedFields: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "petclinic_owner_rejected_fields_total",
			Help: "Field violations on rejected owner submissions",
		}, []string{"field"}),
	}
}

// IncrementOutcome records one navigation outcome.
func (m *Metrics) IncrementOutcome(operation, outcome string) {
	if m != nil {
		m.Outcomes.WithLabelValues(operation, outcome).Inc()
	}
}

// IncrementRejectedField records a violation on field.
func (m *Metrics) IncrementRejectedField(field string) {
	if m != nil {
		m.RejectedFields.WithLabelValues(field).Inc()
	}
}
