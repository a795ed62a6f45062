// Package metrics declares the Prometheus instruments the HTTP server
// exposes at /metrics: lookup counters recorded by internal/httpapi and
// per-run collectors recorded by internal/history when a run is saved.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RunsServed counts completed GET /runs/{id} lookups, by policy.
var RunsServed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "rtalgs",
	Subsystem: "http",
	Name:      "runs_served_total",
	Help:      "Total run lookups served, labeled by scheduling policy.",
}, []string{"policy"})

// RunsNotFound counts GET /runs/{id} and GET /runs/{id}/timeline
// lookups for an unknown run ID.
var RunsNotFound = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "rtalgs",
	Subsystem: "http",
	Name:      "runs_not_found_total",
	Help:      "Total run lookups for an unknown run ID.",
})

// ContextSwitches observes the context-switch count of every run saved
// to the ledger, labeled by policy.
var ContextSwitches = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "rtalgs",
	Subsystem: "run",
	Name:      "context_switches",
	Help:      "Context switches recorded per simulation run.",
	Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
}, []string{"policy"})

// DeadlineMisses counts deadline-miss diagnostics across all saved
// runs, labeled by policy.
var DeadlineMisses = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "rtalgs",
	Subsystem: "run",
	Name:      "deadline_misses_total",
	Help:      "Total deadline-miss events recorded across saved runs.",
}, []string{"policy"})

// RunsSaved counts runs persisted to the ledger, labeled by policy and
// schedulability verdict.
var RunsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "rtalgs",
	Subsystem: "run",
	Name:      "saved_total",
	Help:      "Total simulation runs persisted to the history ledger.",
}, []string{"policy", "verdict"})
