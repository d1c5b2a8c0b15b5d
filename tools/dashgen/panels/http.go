package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

const httpFamily = "sellerlink_http_request_duration_seconds"

// RequestRate returns a timeseries panel showing the HTTP request rate.
func RequestRate() *timeseries.PanelBuilder {
	return lineChart("Request Rate", "HTTP requests per second").
		WithTarget(PromQuery(`sellerlink:http_requests:rate5m`, "req/s", "A")).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// LatencyPercentiles returns a timeseries panel showing p50, p95, and p99
// HTTP request latencies.
func LatencyPercentiles() *timeseries.PanelBuilder {
	return lineChart("Latency Percentiles", "HTTP request duration percentiles").
		WithTarget(PromQuery(Quantile(0.50, httpFamily), "p50", "A")).
		WithTarget(PromQuery(Quantile(0.95, httpFamily), "p95", "B")).
		WithTarget(PromQuery(Quantile(0.99, httpFamily), "p99", "C")).
		Unit("s").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// ErrorRate returns a timeseries panel showing the HTTP 5xx error rate
// as a percentage.
func ErrorRate() *timeseries.PanelBuilder {
	return lineChart("Error Rate %", "HTTP 5xx error rate as percentage of total requests").
		WithTarget(PromQuery(
			`sellerlink:http_errors:rate5m / sellerlink:http_requests:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}

// CallerErrors returns a bar chart of the statuses callers see when the
// marketplace side fails: reconnect prompts, missing scopes, throttling and
// upstream outages.
func CallerErrors() *timeseries.PanelBuilder {
	return lineChart("Caller-facing Errors", "401 reconnect, 403 scope, 429 throttled, 502/503 upstream responses per second").
		WithTarget(PromQuery(
			`sum by (status) (rate(sellerlink_http_requests_total{job="sellerlink",status=~"401|403|429|502|503"}[5m]))`,
			"{{status}}", "A",
		)).
		Unit("reqps").
		FillOpacity(20).
		LineWidth(1).
		Legend(TableLegend("sum", "max")).
		Tooltip(MultiTooltip()).
		DrawStyle(common.GraphDrawStyleBars)
}

// RequestsByRoute returns a timeseries panel breaking the request rate down
// by route template.
func RequestsByRoute() *timeseries.PanelBuilder {
	return lineChart("Requests by Route", "HTTP requests per second per route template").
		WithTarget(PromQuery(
			`sum by (path) (rate(sellerlink_http_requests_total{job="sellerlink"}[5m]))`,
			"{{path}}", "A",
		)).
		Unit("reqps").
		LineWidth(1).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}
