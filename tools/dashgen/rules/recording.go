package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "sellerlink-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "sellerlink-recording",
					Rules: []Rule{
						{
							Record: "sellerlink:http_requests:rate5m",
							Expr:   `sum(rate(sellerlink_http_requests_total[5m]))`,
						},
						{
							Record: "sellerlink:http_errors:rate5m",
							Expr:   `sum(rate(sellerlink_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "sellerlink:spapi_calls:rate5m",
							Expr:   `sum(rate(sellerlink_spapi_calls_total[5m]))`,
						},
						{
							Record: "sellerlink:spapi_throttled:rate5m",
							Expr:   `sum(rate(sellerlink_spapi_calls_total{status="429"}[5m]))`,
						},
						{
							Record: "sellerlink:token_refresh_failures:rate5m",
							Expr:   `sum(rate(sellerlink_token_refreshes_total{result="error"}[5m]))`,
						},
						{
							Record: "sellerlink:orders_fetched:rate5m",
							Expr:   `sum(rate(sellerlink_orders_fetched_total[5m]))`,
						},
						{
							Record: "sellerlink:synthetic_fallbacks:rate5m",
							Expr:   `sum(rate(sellerlink_synthetic_fallbacks_total[5m]))`,
						},
					},
				},
			},
		},
	}
}
