// Package telemetry holds the prometheus collectors of the traffic
// controller. Collectors register with the default registry, which the HTTP
// adapter serves on /metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Transitions counts campaign state changes.
	Transitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_controller_transitions_total",
			Help: "Campaign state transitions committed by the controller",
		},
		[]string{"from", "to"},
	)

	// PlatformCalls counts external platform calls by outcome.
	PlatformCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_controller_platform_calls_total",
			Help: "External platform calls issued by the controller",
		},
		[]string{"op", "result"},
	)

	// BudgetPushes counts committed budget pushes.
	BudgetPushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_controller_budget_pushes_total",
			Help: "Budget pushes committed, by kind (initial or supplemental)",
		},
		[]string{"kind"},
	)

	// FatalCampaigns counts passes over campaigns that need operator action.
	FatalCampaigns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "traffic_controller_fatal_total",
			Help: "Campaign passes skipped because of a configuration error",
		},
	)

	// PassDuration observes single campaign passes.
	PassDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "traffic_controller_pass_duration_seconds",
			Help:    "Duration of a single campaign pass",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"outcome"},
	)

	// Redirects counts tracked URL redirects.
	Redirects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_controller_redirects_total",
			Help: "Tracked URL redirects served",
		},
		[]string{"result"},
	)
)

// Result maps an error to a metric label.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
