package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds provisioning metrics. It is separate from the default registry so a
// push only carries what this tool produced.
var Registry = prometheus.NewRegistry()

// Provisioning Prometheus metrics.
var (
	SchemaOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vecprovision",
			Name:      "schema_operations_total",
			Help:      "Total number of schema operations against the database",
		},
		[]string{"op", "status"},
	)

	SchemaOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vecprovision",
			Name:      "schema_operation_duration_seconds",
			Help:      "Schema operation duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"op"},
	)

	CollectionsProvisionedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vecprovision",
			Name:      "collections_provisioned_total",
			Help:      "Collections created, labelled by whether a previous one was replaced",
		},
		[]string{"kind", "replaced"},
	)

	CredentialChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vecprovision",
			Name:      "credential_checks_total",
			Help:      "Embedding provider credential preflight checks",
		},
		[]string{"provider", "status"},
	)

	LastSuccessTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vecprovision",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful provisioning run",
		},
	)
)

var registerOnce sync.Once

// RegisterProvisionMetrics registers provisioning metrics in Registry. Safe to call repeatedly.
func RegisterProvisionMetrics() {
	registerOnce.Do(func() {
		Registry.MustRegister(
			SchemaOperationsTotal,
			SchemaOperationDuration,
			CollectionsProvisionedTotal,
			CredentialChecksTotal,
			LastSuccessTimestamp,
		)
	})
}
