package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

const lockWaitFamily = "sellerlink_refresh_lock_wait_seconds"

// RefreshResults returns a timeseries panel showing access token refreshes
// by result. "skipped" means another instance refreshed first.
func RefreshResults() *timeseries.PanelBuilder {
	return lineChart("Token Refreshes", "Access token refresh attempts per second by result").
		Span(8).
		WithTarget(PromQuery(
			`sum by (result) (rate(sellerlink_token_refreshes_total{job="sellerlink"}[5m]))`,
			"{{result}}", "A",
		)).
		Unit("ops").
		Legend(TableLegend("sum", "max")).
		Tooltip(MultiTooltip())
}

// LockWait returns a timeseries panel showing p50 and p95 time spent waiting
// on the cross-instance refresh lock.
func LockWait() *timeseries.PanelBuilder {
	return lineChart("Refresh Lock Wait", "Time spent acquiring the refresh lock").
		Span(8).
		WithTarget(PromQuery(Quantile(0.50, lockWaitFamily), "p50", "A")).
		WithTarget(PromQuery(Quantile(0.95, lockWaitFamily), "p95", "B")).
		Unit("s").
		Tooltip(MultiTooltip())
}

// ExchangeFailures returns a stat panel showing failed authorization code
// exchanges over the past 24 hours.
func ExchangeFailures() *stat.PanelBuilder {
	return thresholdStat("Exchange Failures (24h)", "Authorization codes the token endpoint rejected in the last 24 hours").
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(increase(sellerlink_token_exchanges_total{job="sellerlink",result="error"}[24h]))`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		GraphMode(common.BigValueGraphModeArea)
}
