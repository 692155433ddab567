// Package metrics holds the prometheus collectors for the booking intake
// pipeline. Collectors are registered on the default registry via promauto
// and exposed by the /metrics endpoint wired in main.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsCreated counts successfully persisted booking requests.
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "booking_api",
		Name:      "bookings_created_total",
		Help:      "The total number of booking requests persisted.",
	})

	// BookingsRejected counts rejected submissions by reason
	// (validation, invalid_service, internal).
	BookingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booking_api",
		Name:      "bookings_rejected_total",
		Help:      "The total number of booking submissions rejected.",
	}, []string{"reason"})

	// RateLimited counts requests denied by the rate limiter.
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "booking_api",
		Name:      "rate_limited_total",
		Help:      "The total number of requests denied by the rate limiter.",
	})

	// Notifications counts notification send outcomes by message kind
	// (confirmation, internal) and result (ok, error).
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booking_api",
		Name:      "notifications_total",
		Help:      "The total number of notification sends by kind and result.",
	}, []string{"kind", "result"})
)
