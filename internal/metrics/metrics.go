// Package metrics defines Prometheus metrics for sellerlink.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sellerlink"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Upstream API metrics.
var (
	SPAPICallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "spapi_calls_total",
		Help:      "Total upstream data API calls by operation and response class.",
	}, []string{"operation", "status"})

	SPAPIDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "spapi_daily_usage",
		Help:      "Current upstream API call count within the rolling 24-hour window.",
	})

	SPAPIDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "spapi_daily_limit_hits_total",
		Help:      "Total number of times the local daily call budget was reached.",
	})

	SPAPIRateLimit = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "spapi_rate_limit_per_second",
		Help:      "Sustained request rate most recently granted by the upstream, by operation.",
	}, []string{"operation"})
)

// Token lifecycle metrics.
var (
	TokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total access token refresh attempts by result.",
	}, []string{"result"})

	TokenExchangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_exchanges_total",
		Help:      "Total authorization code exchanges by result.",
	}, []string{"result"})

	RefreshLockWaitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "refresh_lock_wait_seconds",
		Help:      "Time spent waiting for the cross-instance refresh lock.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Order retrieval metrics.
var (
	OrdersFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_fetched_total",
		Help:      "Total number of real orders returned to callers.",
	})

	OrderPagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_pages_total",
		Help:      "Total number of order pages fetched from the upstream.",
	})

	OrderFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_fetch_duration_seconds",
		Help:      "Duration of complete order retrievals in seconds.",
		Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	SyntheticFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "synthetic_fallbacks_total",
		Help:      "Total number of retrievals answered with synthetic demo data.",
	})

	RestrictedTokenRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restricted_token_requests_total",
		Help:      "Total restricted-data token requests by result.",
	}, []string{"result"})
)

// Connection metrics.
var (
	ConnectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connections_total",
		Help:      "Total connect and disconnect operations by action and result.",
	}, []string{"action", "result"})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last /healthz probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last /readyz probe succeeded (1) or failed (0).",
	})
)
