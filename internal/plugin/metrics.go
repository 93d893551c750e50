// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package plugin

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Status values for PluginLoads.
const (
	StatusSuccess  = "success"
	StatusPartial  = "partial"
	StatusFailed   = "failed"
	StatusSkipped  = "skipped"
	StatusDeferred = "deferred"
)

// PluginLoads counts ReloadPlugin calls by outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var PluginLoads = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quill_plugin_loads_total",
		Help: "Total number of plugin reloads by status",
	},
	[]string{"status"},
)

// Registrations counts registered extensions by kind.
var Registrations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quill_plugin_registrations_total",
		Help: "Total number of plugin extensions registered",
	},
	[]string{"kind"},
)

// MemberFailures counts exported classes that failed to register.
var MemberFailures = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "quill_plugin_member_failures_total",
		Help: "Total number of plugin members that failed to register",
	},
)

// RegisterMetrics registers plugin package metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(PluginLoads)
	reg.MustRegister(Registrations)
	reg.MustRegister(MemberFailures)
}
