// Package metrics exposes the prometheus collectors the engine
// instruments itself with, grounded on noah-isme-sma-adp-api's metrics
// wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_requests_total",
		Help: "Total number of Optimize requests, labeled by outcome (ok, error).",
	}, []string{"outcome"})

	SolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_solve_duration_seconds",
		Help:    "Wall-clock time of a full Optimize call, from filter to solved schedules.",
		Buckets: prometheus.DefBuckets,
	})

	InfeasibleTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_infeasible_total",
		Help: "Total number of requests that completed with zero schedules (infeasible model).",
	})
)
