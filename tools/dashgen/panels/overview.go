package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// probeStat returns a red/green stat for a 0/1 probe gauge.
func probeStat(title, description, metric string) *stat.PanelBuilder {
	return thresholdStat(title, description).
		WithTarget(PromQuery(fmt.Sprintf(`%s{job=%q}`, metric, Job), "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		TextMode(common.BigValueTextModeValue)
}

// HealthzStat returns a stat panel showing the health check status.
func HealthzStat() *stat.PanelBuilder {
	return probeStat("Healthz", "Health check status (1 = ok, 0 = failing)", "sellerlink_healthz_up")
}

// ReadyzStat returns a stat panel showing whether the credential store and
// refresh lock backend are reachable.
func ReadyzStat() *stat.PanelBuilder {
	return probeStat("Readyz", "Readiness: credential store and refresh lock reachable (1 = ready)", "sellerlink_readyz_up")
}

// QuotaGauge returns a gauge panel showing upstream usage as a percentage of
// the local daily call budget.
func QuotaGauge() *gauge.PanelBuilder {
	expr := fmt.Sprintf(`sellerlink_spapi_daily_usage{job=%q} / %d * 100`, Job, DailyCallBudget)
	return gauge.NewPanelBuilder().
		Title("Daily Budget %").
		Description("Rolling 24h upstream calls as percentage of the local budget").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsGreenYellowRed(80, 95)).
		ColorScheme(ColorSchemeThresholds())
}

// UptimeStat returns a stat panel showing process uptime.
func UptimeStat() *stat.PanelBuilder {
	return thresholdStat("Uptime", "Time since process start").
		WithTarget(PromQuery(fmt.Sprintf(`time() - process_start_time_seconds{job=%q}`, Job), "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorMode(common.BigValueColorModeValue)
}
