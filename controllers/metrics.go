package controllers

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	dnpControllerReconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dnp_controller_reconcile_total",
			Help: "Number of reconciliations by controller.",
		},
		[]string{"controller"},
	)
	dnpControllerReconcileErrorTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dnp_controller_reconcile_error_total",
			Help: "Number of reconciliation errors by controller.",
		},
		[]string{"controller"},
	)

	installRequestResolutionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dnp_installrequest_resolution_duration_seconds",
			Help:    "Time taken to resolve an InstallRequest.",
			Buckets: prometheus.DefBuckets,
		},
	)
	installRequestCombinationsChecked = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dnp_installrequest_combinations_checked",
			Help:    "Number of combinations verified per resolution.",
			Buckets: prometheus.ExponentialBuckets(1, 10, 8),
		},
	)
	installRequestOutcomeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dnp_installrequest_outcome_total",
			Help: "Resolutions by outcome (success, exhausted, timeout, invalid).",
		},
		[]string{"outcome"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		dnpControllerReconcileTotal,
		dnpControllerReconcileErrorTotal,
		installRequestResolutionDuration,
		installRequestCombinationsChecked,
		installRequestOutcomeTotal,
	)
}
