package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, SPAPICallsTotal)
	assert.NotNil(t, SPAPIDailyUsage)
	assert.NotNil(t, SPAPIDailyLimitHits)
	assert.NotNil(t, SPAPIRateLimit)
	assert.NotNil(t, TokenRefreshesTotal)
	assert.NotNil(t, TokenExchangesTotal)
	assert.NotNil(t, RefreshLockWaitDuration)
	assert.NotNil(t, OrdersFetchedTotal)
	assert.NotNil(t, OrderPagesTotal)
	assert.NotNil(t, OrderFetchDuration)
	assert.NotNil(t, SyntheticFallbacksTotal)
	assert.NotNil(t, RestrictedTokenRequestsTotal)
	assert.NotNil(t, ConnectionsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
}

