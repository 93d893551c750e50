// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package event

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Fires counts Fire calls per channel.
// Use RegisterMetrics to register this with a Prometheus registry.
var Fires = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quill_event_fires_total",
		Help: "Total number of times a lifecycle channel was fired",
	},
	[]string{"channel"},
)

// ObserverFailures counts observer invocations that returned an error or panicked.
// Use RegisterMetrics to register this with a Prometheus registry.
var ObserverFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quill_event_observer_failures_total",
		Help: "Total number of failed observer invocations",
	},
	[]string{"channel"},
)

// RegisterMetrics registers event package metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Fires)
	reg.MustRegister(ObserverFailures)
}
