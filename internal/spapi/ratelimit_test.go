package spapi_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sellerlink/internal/spapi"
)

func TestRateLimiter_Wait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    float64
		burst   int
		daily   int64
		calls   int
		wantErr bool
	}{
		{
			name:  "allows calls within rate",
			rate:  100,
			burst: 10,
			daily: 5000,
			calls: 3,
		},
		{
			name:  "allows burst",
			rate:  100,
			burst: 5,
			daily: 5000,
			calls: 5,
		},
		{
			name:    "rejects when daily budget reached",
			rate:    100,
			burst:   10,
			daily:   2,
			calls:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl := spapi.NewRateLimiter(tt.rate, tt.burst, tt.daily)

			var lastErr error
			for range tt.calls {
				lastErr = rl.Wait(context.Background(), "acct-1", "list_orders")
				if lastErr != nil {
					break
				}
			}

			if tt.wantErr {
				require.Error(t, lastErr)
				assert.ErrorIs(t, lastErr, spapi.ErrDailyLimitReached)
				assert.ErrorIs(t, lastErr, spapi.ErrRateLimited)
				assert.Equal(t, int64(0), rl.Remaining())
			} else {
				require.NoError(t, lastErr)
			}
		})
	}
}

func TestRateLimiter_DailyReset(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	currentTime := start

	rl := spapi.NewRateLimiter(
		100, 10, 5000,
		spapi.WithRateLimiterNowFunc(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return currentTime
		}),
	)

	require.NoError(t, rl.Wait(context.Background(), "acct-1", "list_orders"))
	require.NoError(t, rl.Wait(context.Background(), "acct-1", "list_orders"))
	assert.Equal(t, int64(2), rl.DailyCount())
	assert.Equal(t, start.Add(24*time.Hour), rl.ResetAt())

	// Still inside the rolling window.
	mu.Lock()
	currentTime = start.Add(23 * time.Hour)
	mu.Unlock()
	require.NoError(t, rl.Wait(context.Background(), "acct-1", "list_orders"))
	assert.Equal(t, int64(3), rl.DailyCount())

	mu.Lock()
	currentTime = start.Add(25 * time.Hour)
	mu.Unlock()
	require.NoError(t, rl.Wait(context.Background(), "acct-1", "list_orders"))
	assert.Equal(t, int64(1), rl.DailyCount())
}

func TestRateLimiter_Observe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		wantOk bool
		want   float64
	}{
		{name: "adopts upstream rate", header: "0.0167", wantOk: true, want: 0.0167},
		{name: "ignores empty header", header: ""},
		{name: "ignores malformed header", header: "fast"},
		{name: "ignores non-positive rate", header: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl := spapi.NewRateLimiter(2, 5, 5000)
			got, ok := rl.Observe("acct-1", "list_orders", tt.header)
			assert.Equal(t, tt.wantOk, ok)
			assert.InDelta(t, tt.want, got, 0.00001)
			assert.InDelta(t, 2, rl.Limit(), 0.00001, "configured default is unchanged")
			if tt.wantOk {
				assert.InDelta(t, tt.want, rl.AdvertisedRates()["list_orders"], 0.00001)
			} else {
				assert.Empty(t, rl.AdvertisedRates())
			}
		})
	}
}

func TestRateLimiter_AccountsAreIndependent(t *testing.T) {
	t.Parallel()

	// One slot per minute: a second call for the same bucket cannot be
	// served before the deadline.
	rl := spapi.NewRateLimiter(1.0/60, 1, 5000)

	require.NoError(t, rl.Wait(context.Background(), "acct-a", "list_orders"))

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, rl.Wait(ctx, "acct-b", "list_orders"), "another account has its own bucket")
	require.NoError(t, rl.Wait(ctx, "acct-a", "create_restricted_data_token"), "another operation has its own bucket")

	err := rl.Wait(ctx, "acct-a", "list_orders")
	require.ErrorIs(t, err, spapi.ErrRateLimited)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The refused call is not charged to the daily budget.
	assert.Equal(t, int64(3), rl.DailyCount())
}

func TestRateLimiter_ObserveScopedToOperation(t *testing.T) {
	t.Parallel()

	rl := spapi.NewRateLimiter(100, 1, 5000)
	require.NoError(t, rl.Wait(context.Background(), "acct-a", "list_orders"))
	require.NoError(t, rl.Wait(context.Background(), "acct-a", "create_restricted_data_token"))

	_, ok := rl.Observe("acct-a", "create_restricted_data_token", "0.0167")
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, rl.Wait(ctx, "acct-a", "list_orders"), "orders bucket keeps its own rate")
	require.ErrorIs(t, rl.Wait(ctx, "acct-a", "create_restricted_data_token"), spapi.ErrRateLimited)

	assert.Equal(t, map[string]float64{"create_restricted_data_token": 0.0167}, rl.AdvertisedRates())
}

func TestRateLimiter_DailyBudgetUnderConcurrency(t *testing.T) {
	t.Parallel()

	const budget = 50
	rl := spapi.NewRateLimiter(1000, 1000, budget)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Wait(context.Background(), fmt.Sprintf("acct-%d", i%7), "list_orders") == nil {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, budget, allowed)
	assert.Equal(t, int64(budget), rl.DailyCount())
	assert.Zero(t, rl.Remaining())
}

func TestRateLimiter_ContextCanceled(t *testing.T) {
	t.Parallel()

	rl := spapi.NewRateLimiter(0.1, 1, 5000)

	require.NoError(t, rl.Wait(context.Background(), "acct-1", "list_orders"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.Wait(ctx, "acct-1", "list_orders")
	require.ErrorIs(t, err, spapi.ErrRateLimited)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "waiting for list_orders slot")
}
