package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CallsByOperation returns a timeseries panel showing upstream calls per
// second split by operation and response class.
func CallsByOperation() *timeseries.PanelBuilder {
	return lineChart("Upstream Calls", "Marketplace API calls per second by operation and status").
		Span(8).
		WithTarget(PromQuery(
			`sum by (operation, status) (rate(sellerlink_spapi_calls_total{job="sellerlink"}[5m]))`,
			"{{operation}} {{status}}", "A",
		)).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// DailyUsage returns a timeseries panel showing the rolling 24h call count
// against the local budget.
func DailyUsage() *timeseries.PanelBuilder {
	budget := float64(DailyCallBudget)
	return lineChart("Daily Usage vs Budget", fmt.Sprintf("Rolling 24h upstream call count (budget: %d)", DailyCallBudget)).
		Span(8).
		WithTarget(PromQuery(`sellerlink_spapi_daily_usage{job="sellerlink"}`, "usage", "A")).
		Thresholds(ThresholdsGreenYellowRed(budget*0.8, budget)).
		ColorScheme(ColorSchemeThresholds())
}

// GrantedRate returns a timeseries panel showing, per operation, the
// sustained rate the upstream most recently advertised in its rate limit
// header.
func GrantedRate() *timeseries.PanelBuilder {
	return lineChart("Granted Rate", "Per-seller requests per second advertised by the upstream rate limit header").
		Span(8).
		WithTarget(PromQuery(
			`max by (operation) (sellerlink_spapi_rate_limit_per_second{job="sellerlink"})`,
			"{{operation}}", "A",
		)).
		Unit("reqps").
		FillOpacity(0)
}

// Throttled returns a stat panel showing the share of upstream calls answered
// with 429 over the last 5 minutes.
func Throttled() *stat.PanelBuilder {
	return thresholdStat("Throttled %", "Share of upstream calls rejected with 429").
		Span(8).
		WithTarget(PromQuery(
			`sellerlink:spapi_throttled:rate5m / sellerlink:spapi_calls:rate5m * 100`,
			"", "A",
		)).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(5, 20)).
		GraphMode(common.BigValueGraphModeArea)
}

// LimitHits returns a stat panel showing the number of times the local
// daily budget was reached in the past 24 hours.
func LimitHits() *stat.PanelBuilder {
	return thresholdStat("Budget Hits (24h)", "Times the local daily call budget was reached in the last 24 hours").
		Span(8).
		WithTarget(PromQuery(
			`increase(sellerlink_spapi_daily_limit_hits_total{job="sellerlink"}[24h])`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		GraphMode(common.BigValueGraphModeArea)
}
