package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sellerlink/internal/api/handlers"
	"github.com/donaldgifford/sellerlink/internal/spapi"
	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockOrders is a test double for OrderService.
type mockOrders struct {
	result *domain.OrderResult
	count  int
	err    error
	opts   spapi.FetchOptions
}

func (m *mockOrders) Orders(_ context.Context, _ string, opts spapi.FetchOptions) (*domain.OrderResult, error) {
	m.opts = opts
	return m.result, m.err
}

func (m *mockOrders) OrderCount(_ context.Context, _ string, opts spapi.FetchOptions) (int, bool, error) {
	m.opts = opts
	if m.err != nil {
		return 0, false, m.err
	}
	return m.count, m.result != nil && m.result.Synthetic, nil
}

func newOrdersAPI(t *testing.T, svc handlers.OrderService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	handlers.RegisterOrderRoutes(api, handlers.NewOrdersHandler(svc, quietLogger()))
	return api
}

func TestListOrders(t *testing.T) {
	t.Parallel()

	svc := &mockOrders{result: &domain.OrderResult{Orders: []domain.OrderRecord{
		{OrderID: "402-1", OrderDate: "2025-06-14", Status: domain.OrderShipped, Amount: "INR 450.00"},
		{OrderID: "402-2", OrderDate: "2025-06-13", Status: domain.OrderPending, Amount: domain.AmountNotAvailable},
	}}}
	api := newOrdersAPI(t, svc)

	resp := api.Get("/api/v1/accounts/acct-1/orders?window_days=7&page_size=20&limit=40")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"order_id":"402-1"`)
	assert.Contains(t, body, `"amount":"INR 450.00"`)
	assert.Contains(t, body, `"amount":"N/A"`)
	assert.Contains(t, body, `"synthetic":false`)
	assert.NotContains(t, body, `"notice"`)

	assert.Equal(t, spapi.FetchOptions{WindowDays: 7, PageSize: 20, TotalCap: 40}, svc.opts)
}

func TestListOrders_Synthetic(t *testing.T) {
	t.Parallel()

	svc := &mockOrders{result: &domain.OrderResult{
		Orders:    []domain.OrderRecord{{OrderID: "DEMO-0000001-0000001", Status: domain.OrderDelivered}},
		Synthetic: true,
		Notice:    spapi.SyntheticNotice,
	}}
	api := newOrdersAPI(t, svc)

	resp := api.Get("/api/v1/accounts/acct-1/orders")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"synthetic":true`)
	assert.Contains(t, resp.Body.String(), `"notice":"demo data`)
	assert.Equal(t, spapi.FetchOptions{}, svc.opts)
}

func TestListOrders_InvalidQuery(t *testing.T) {
	t.Parallel()

	api := newOrdersAPI(t, &mockOrders{})

	resp := api.Get("/api/v1/accounts/acct-1/orders?page_size=500")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

// limiterErr returns the error a second call in the same rate limit bucket
// gets when it cannot be served before its deadline.
func limiterErr(t *testing.T, daily int64) error {
	t.Helper()

	rl := spapi.NewRateLimiter(0.0167, 1, daily)
	require.NoError(t, rl.Wait(context.Background(), "acct-1", "list_orders"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := rl.Wait(ctx, "acct-1", "list_orders")
	require.Error(t, err)
	return err
}

func TestListOrders_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "disconnected",
			err:        fmt.Errorf("%w: account acct-1 has no credential", spapi.ErrDisconnected),
			wantStatus: http.StatusUnauthorized,
			wantBody:   "reconnected",
		},
		{
			name:       "refresh revoked",
			err:        fmt.Errorf("refreshing access token: %w", &spapi.RefreshError{StatusCode: 400, Code: "invalid_grant"}),
			wantStatus: http.StatusUnauthorized,
			wantBody:   "reconnected",
		},
		{
			name:       "upstream 401",
			err:        &spapi.APIError{StatusCode: http.StatusUnauthorized, Endpoint: "/orders/v0/orders"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "reconnected",
		},
		{
			name:       "access denied",
			err:        &spapi.AccessDeniedError{Scope: spapi.OrdersScope, Err: spapi.ErrForbidden},
			wantStatus: http.StatusForbidden,
			wantBody:   spapi.OrdersScope,
		},
		{
			name:       "rate limited",
			err:        &spapi.APIError{StatusCode: http.StatusTooManyRequests, Endpoint: "/orders/v0/orders"},
			wantStatus: http.StatusTooManyRequests,
			wantBody:   "retry later",
		},
		{
			name:       "local limiter deadline",
			err:        fmt.Errorf("fetching orders page 1: %w", limiterErr(t, 5000)),
			wantStatus: http.StatusTooManyRequests,
			wantBody:   "retry later",
		},
		{
			name:       "daily budget spent",
			err:        limiterErr(t, 1),
			wantStatus: http.StatusTooManyRequests,
			wantBody:   "retry later",
		},
		{
			name:       "network",
			err:        &spapi.NetworkError{Op: "ListOrders", Err: errors.New("connection reset")},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "unreachable",
		},
		{
			name:       "configuration",
			err:        fmt.Errorf("%w: empty marketplace", spapi.ErrConfiguration),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "misconfigured",
		},
		{
			name:       "other upstream status",
			err:        &spapi.APIError{StatusCode: http.StatusInternalServerError, Endpoint: "/orders/v0/orders", Message: "secret upstream detail"},
			wantStatus: http.StatusBadGateway,
			wantBody:   "unexpected error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newOrdersAPI(t, &mockOrders{err: tt.err})

			resp := api.Get("/api/v1/accounts/acct-1/orders")
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
			assert.NotContains(t, resp.Body.String(), "secret upstream detail")
		})
	}
}

func TestCountOrders(t *testing.T) {
	t.Parallel()

	svc := &mockOrders{count: 12, result: &domain.OrderResult{Synthetic: true}}
	api := newOrdersAPI(t, svc)

	resp := api.Get("/api/v1/accounts/acct-1/orders/count?window_days=14")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"count":12,"synthetic":true}`, resp.Body.String())
	assert.Equal(t, 14, svc.opts.WindowDays)
}
