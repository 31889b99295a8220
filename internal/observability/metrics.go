// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pressroom_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CacheLookups counts cache reads by cache name and outcome (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pressroom_cache_lookups_total",
		Help: "Total number of cache lookups by outcome",
	}, []string{"cache", "outcome"})

	// PostEvents counts post lifecycle events published to subscribers.
	PostEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pressroom_post_events_total",
		Help: "Total number of post events published",
	}, []string{"event_type"})
)
