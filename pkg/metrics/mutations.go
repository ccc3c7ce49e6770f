package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MutationMetrics tracks inventory mutations and audit-write outcomes.
type MutationMetrics struct {
	mutations         *prometheus.CounterVec
	auditWriteFailure prometheus.Counter
}

// NewMutationMetrics registers the mutation metrics on the provided registerer.
func NewMutationMetrics(reg prometheus.Registerer) *MutationMetrics {
	if reg == nil {
		return &MutationMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_mutations_total",
		Help: "Successful inventory mutations by action.",
	}, []string{"action"})
	auditWriteFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_write_failures_total",
		Help: "Audit log writes that failed after a successful mutation.",
	})
	reg.MustRegister(mutations, auditWriteFailure)
	return &MutationMetrics{
		mutations:         mutations,
		auditWriteFailure: auditWriteFailure,
	}
}

// IncMutation increments the mutation counter for the named action.
func (m *MutationMetrics) IncMutation(action string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncAuditWriteFailure counts one swallowed audit write failure.
func (m *MutationMetrics) IncAuditWriteFailure() {
	if m == nil || m.auditWriteFailure == nil {
		return
	}
	m.auditWriteFailure.Inc()
}

func normalizeLabel(action string) string {
	if action == "" {
		return "unknown"
	}
	return action
}
