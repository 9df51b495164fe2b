// Package metrics declares the Prometheus collectors exported on /metrics.
// Collectors register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cinepedia"

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - action: "register" or "login"
//   - outcome: "ok", "invalid", "conflict", "bad_credentials" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Register and login attempts by outcome.",
	},
	[]string{"action", "outcome"},
)

// MovieOperationsTotal counts movie mutations.
// Labels:
//   - op: "create", "update" or "delete"
//   - outcome: "ok", "invalid", "conflict", "forbidden", "not_found" or "error"
var MovieOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "movie_operations_total",
		Help:      "Movie create/update/delete operations by outcome.",
	},
	[]string{"op", "outcome"},
)

// CommentOperationsTotal counts comment mutations, labelled like
// MovieOperationsTotal.
var CommentOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comment_operations_total",
		Help:      "Comment create/delete operations by outcome.",
	},
	[]string{"op", "outcome"},
)

// HTTPRequestDuration measures request latency per matched route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route template and status code.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
