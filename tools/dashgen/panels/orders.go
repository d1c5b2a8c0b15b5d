package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

const fetchFamily = "sellerlink_order_fetch_duration_seconds"

// OrdersRate returns a timeseries panel showing real orders returned per
// minute alongside pages fetched.
func OrdersRate() *timeseries.PanelBuilder {
	return lineChart("Orders Returned", "Real orders returned to callers and upstream pages fetched per minute").
		Span(8).
		WithTarget(PromQuery(`sellerlink:orders_fetched:rate5m * 60`, "orders/min", "A")).
		WithTarget(PromQuery(
			`sum(rate(sellerlink_order_pages_total{job="sellerlink"}[5m])) * 60`,
			"pages/min", "B",
		)).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// FetchDuration returns a timeseries panel showing p50 and p95 latency of a
// complete order retrieval, pagination delays included.
func FetchDuration() *timeseries.PanelBuilder {
	return lineChart("Retrieval Duration", "End-to-end order retrieval time including page delays").
		Span(8).
		WithTarget(PromQuery(Quantile(0.50, fetchFamily), "p50", "A")).
		WithTarget(PromQuery(Quantile(0.95, fetchFamily), "p95", "B")).
		Unit("s").
		Tooltip(MultiTooltip())
}

// SyntheticShare returns a stat panel showing synthetic fallbacks over the
// past 24 hours. Any value means some caller saw demo data.
func SyntheticShare() *stat.PanelBuilder {
	return thresholdStat("Synthetic Fallbacks (24h)", "Retrievals answered with labelled demo data after an authorization denial").
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`increase(sellerlink_synthetic_fallbacks_total{job="sellerlink"}[24h])`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		GraphMode(common.BigValueGraphModeArea)
}

// breakdown returns a horizontal bar gauge of a counter increase grouped by
// the given legend.
func breakdown(title, description, expr, legend string) *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(TSHeight).
		WithTarget(PromQuery(expr, legend, "A")).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// RestrictedTokens returns a bar gauge panel showing restricted-data token
// requests by result over the past hour.
func RestrictedTokens() *bargauge.PanelBuilder {
	return breakdown("Restricted-data Tokens (1h)", "Restricted-data token requests by result",
		`sum by (result) (increase(sellerlink_restricted_token_requests_total{job="sellerlink"}[1h]))`,
		"{{result}}",
	).Span(TSWidth)
}

// ConnectionResults returns a bar gauge panel showing connect and disconnect
// outcomes over the past 24 hours.
func ConnectionResults() *bargauge.PanelBuilder {
	return breakdown("Connections (24h)", "Connect and disconnect operations by outcome",
		`sum by (action, result) (increase(sellerlink_connections_total{job="sellerlink"}[24h]))`,
		"{{action}} {{result}}",
	).Span(FullWidth)
}
