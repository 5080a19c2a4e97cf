// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Shipping relay metrics ────────────────────────────────────────────────────

// ShippingTokenRefreshTotal counts credential exchanges with the courier
// provider.
// Label:
//   - result: "ok" or "error"
var ShippingTokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipping_token_refresh_total",
		Help:      "Total number of courier credential exchanges, by result.",
	},
	[]string{"result"},
)

// ShippingRelayTotal counts relay operations forwarded to the courier.
// Labels:
//   - op: "create_order" or "serviceability"
//   - outcome: "ok", "auth_error", "upstream_error", or "duplicate"
var ShippingRelayTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipping_relay_total",
		Help:      "Total number of relay operations, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// ShippingRelayDuration measures the round trip of one relay operation.
// Label:
//   - op: "create_order" or "serviceability"
var ShippingRelayDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "shipping_relay_duration_seconds",
		Help:      "Duration of a relay round trip to the courier provider.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"op"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly recorded storefront orders.
// Label:
//   - payment_method: "cod" or "prepaid"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of storefront orders created, by payment method.",
	},
	[]string{"payment_method"},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// DashboardReportBuilds counts non-cached dashboard report computations.
var DashboardReportBuilds = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_report_builds_total",
		Help:      "Total number of dashboard reports computed (cache misses).",
	},
)

// DashboardReportDuration measures one full report fold.
var DashboardReportDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dashboard_report_duration_seconds",
		Help:      "Duration of one dashboard report aggregation pass.",
		Buckets:   prometheus.DefBuckets,
	},
)
