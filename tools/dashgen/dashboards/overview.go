// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/sellerlink/tools/dashgen/panels"
)

// BuildOverview constructs the sellerlink overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Sellerlink Overview").
		Uid("sellerlink-overview").
		Tags([]string{"sellerlink", "marketplace"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.CallerErrors()).
		WithPanel(panels.RequestsByRoute()))

	b.WithRow(dashboard.NewRowBuilder("Marketplace API").
		WithPanel(panels.CallsByOperation()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.GrantedRate()).
		WithPanel(panels.Throttled()).
		WithPanel(panels.LimitHits()))

	b.WithRow(dashboard.NewRowBuilder("Tokens").
		WithPanel(panels.RefreshResults()).
		WithPanel(panels.LockWait()).
		WithPanel(panels.ExchangeFailures()))

	b.WithRow(dashboard.NewRowBuilder("Orders").
		WithPanel(panels.OrdersRate()).
		WithPanel(panels.FetchDuration()).
		WithPanel(panels.SyntheticShare()).
		WithPanel(panels.RestrictedTokens()))

	b.WithRow(dashboard.NewRowBuilder("Connections").
		WithPanel(panels.ConnectionResults()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
