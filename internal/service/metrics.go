package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the storefront domain collectors.
type Metrics struct {
	searches    *prometheus.CounterVec
	suggestions prometheus.Counter
	cartOps     *prometheus.CounterVec
	navigations *prometheus.CounterVec
	eventErrors *prometheus.CounterVec
}

// NewMetrics creates the domain collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_searches_total",
				Help: "Total number of product searches by outcome (hit, miss, blank)",
			},
			[]string{"outcome"},
		),
		suggestions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "storefront_suggestions_total",
				Help: "Total number of suggestion lookups",
			},
		),
		cartOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_cart_operations_total",
				Help: "Total number of cart mutations by operation",
			},
			[]string{"operation"},
		),
		navigations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_navigations_total",
				Help: "Total number of view navigations by action and result",
			},
			[]string{"action", "result"},
		),
		eventErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_event_publish_errors_total",
				Help: "Total number of cart events that failed to publish",
			},
			[]string{"event_type"},
		),
	}
	reg.MustRegister(m.searches, m.suggestions, m.cartOps, m.navigations, m.eventErrors)
	return m
}
