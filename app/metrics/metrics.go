// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DataServiceRequests counts calls to the hosted data service by query
	// name and outcome (ok, error).
	DataServiceRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scolamia_dataservice_requests_total",
		Help: "Data service queries by query name and outcome.",
	}, []string{"query", "outcome"})

	// CountdownSource counts which source answered the countdown fallback
	// chain (primary, legacy, static).
	CountdownSource = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scolamia_countdown_source_total",
		Help: "Countdown fallback chain answers by source.",
	}, []string{"source"})

	// BoardTrackedEvents reports how many countdown events the home board is
	// currently displaying.
	BoardTrackedEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scolamia_board_tracked_events",
		Help: "Countdown events currently displayed on the home board.",
	})
)
