package main

import "errors"

// KnownMetrics is the set of metric names exported by sellerlink plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"sellerlink_http_request_duration_seconds": true,
	"sellerlink_http_requests_total":           true,

	// Health metrics.
	"sellerlink_healthz_up": true,
	"sellerlink_readyz_up":  true,

	// Upstream API metrics.
	"sellerlink_spapi_calls_total":            true,
	"sellerlink_spapi_daily_usage":            true,
	"sellerlink_spapi_daily_limit_hits_total": true,
	"sellerlink_spapi_rate_limit_per_second":  true,

	// Token lifecycle metrics.
	"sellerlink_token_refreshes_total":     true,
	"sellerlink_token_exchanges_total":     true,
	"sellerlink_refresh_lock_wait_seconds": true,

	// Order retrieval metrics.
	"sellerlink_orders_fetched_total":            true,
	"sellerlink_order_pages_total":               true,
	"sellerlink_order_fetch_duration_seconds":    true,
	"sellerlink_synthetic_fallbacks_total":       true,
	"sellerlink_restricted_token_requests_total": true,

	// Connection metrics.
	"sellerlink_connections_total": true,

	// Recording rules.
	"sellerlink:http_requests:rate5m":          true,
	"sellerlink:http_errors:rate5m":            true,
	"sellerlink:spapi_calls:rate5m":            true,
	"sellerlink:spapi_throttled:rate5m":        true,
	"sellerlink:token_refresh_failures:rate5m": true,
	"sellerlink:orders_fetched:rate5m":         true,
	"sellerlink:synthetic_fallbacks:rate5m":    true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
