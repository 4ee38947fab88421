// Package metrics holds the pipeline's prometheus collectors, served by
// pkg/metrics alongside the probe endpoints.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	SearchRolls = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "used_market",
		Name:      "search_rolls_total",
		Help:      "Monthly search success rolls performed.",
	})

	ListingsFound = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "used_market",
		Name:      "listings_found_total",
		Help:      "Listings surfaced by search agents.",
	})

	SearchesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "used_market",
		Name:      "searches_completed_total",
		Help:      "Search requests finalized, by outcome.",
	}, []string{"outcome"})

	ListingsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "used_market",
		Name:      "listings_expired_total",
		Help:      "Listings dropped by the expiry pass.",
	})

	InspectionsRequested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "used_market",
		Name:      "inspections_requested_total",
		Help:      "Inspections ordered, by tier.",
	}, []string{"tier"})

	InspectionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "used_market",
		Name:      "inspections_completed_total",
		Help:      "Inspections that reached the complete state.",
	})

	NegotiationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "used_market",
		Name:      "negotiation_outcomes_total",
		Help:      "Seller responses to offers, by response type.",
	}, []string{"response"})

	Purchases = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "used_market",
		Name:      "purchases_total",
		Help:      "Listings resolved into purchases.",
	})
)
