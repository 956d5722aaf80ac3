// Package metrics defines and registers all custom Prometheus metrics for the
// navigation dashboard. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "navdash"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh-endpoint outcomes.
// Label:
//   - result: "success", "missing" (no cookie) or "rejected" (invalid/expired cookie)
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of access-token refresh attempts, by result.",
	},
	[]string{"result"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreOperationsTotal counts document store operations.
// Labels:
//   - collection: "users" or "navigations"
//   - op: "read", "write" or "init"
//   - result: "ok" or "error"
var StoreOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Total number of document store operations.",
	},
	[]string{"collection", "op", "result"},
)

// StoreOperationDuration measures backend latency per operation.
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of document store reads and writes.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"collection", "op"},
)

// NavigationParseFallbacksTotal counts reads that fell back to an empty
// dashboard because the stored document could not be parsed.
var NavigationParseFallbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigation_parse_fallbacks_total",
		Help:      "Total number of navigation reads that degraded to an empty result.",
	},
)
