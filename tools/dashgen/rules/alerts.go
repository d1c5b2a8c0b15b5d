package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// sellerlink operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "sellerlink-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "sellerlink-alerts",
					Rules: []Rule{
						{
							Alert: "SellerlinkDown",
							Expr:  `absent(up{job="sellerlink"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Sellerlink is down",
								"description": "The sellerlink job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "SellerlinkReadinessDown",
							Expr:  `sellerlink_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Sellerlink readiness check is failing",
								"description": "The credential store or refresh lock backend has been unreachable for more than 2 minutes.",
							},
						},
						{
							Alert: "SellerlinkHighErrorRate",
							Expr:  `sellerlink:http_errors:rate5m / sellerlink:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on sellerlink",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "SellerlinkTokenRefreshFailures",
							Expr:  `sellerlink:token_refresh_failures:rate5m > 0`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Access token refreshes are failing",
								"description": "Refreshes have failed for 10 minutes. Affected sellers must reconnect their accounts.",
							},
						},
						{
							Alert: "SellerlinkUpstreamThrottled",
							Expr:  `sellerlink:spapi_throttled:rate5m / sellerlink:spapi_calls:rate5m > 0.2`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Marketplace API is throttling sellerlink",
								"description": "More than 20% of upstream calls have been rejected with 429 for 10 minutes.",
							},
						},
						{
							Alert: "SellerlinkDailyBudgetHigh",
							Expr:  `sellerlink_spapi_daily_usage > 4000`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Upstream daily usage is above 80% of the budget",
								"description": "Rolling 24h upstream usage has exceeded 4000 calls (default budget is 5000).",
							},
						},
						{
							Alert: "SellerlinkDailyBudgetReached",
							Expr:  `increase(sellerlink_spapi_daily_limit_hits_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Upstream daily budget has been reached",
								"description": "Order retrieval is refused locally until calls age out of the 24h window.",
							},
						},
						{
							Alert: "SellerlinkSyntheticFallback",
							Expr:  `sellerlink:synthetic_fallbacks:rate5m > 0`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "info",
							},
							Annotations: map[string]string{
								"summary":     "Callers are receiving demo order data",
								"description": "Order retrieval has fallen back to synthetic data for 15 minutes. Check the app's order-tracking role.",
							},
						},
					},
				},
			},
		},
	}
}
