package spapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sellerlink/internal/spapi"
	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

// fakeUpstream is a minimal data API. Status fields of zero mean 200.
type fakeUpstream struct {
	pages               int
	perPage             int
	ordersStatus        int
	rdtStatus           int
	participationStatus int
	noParticipations    bool

	orderCalls         atomic.Int32
	rdtCalls           atomic.Int32
	participationCalls atomic.Int32
	lastOrdersToken    atomic.Value
	lastProbeToken     atomic.Value
}

func (f *fakeUpstream) handler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /tokens/2021-03-01/restrictedDataToken", func(w http.ResponseWriter, _ *http.Request) {
		f.rdtCalls.Add(1)
		if f.rdtStatus != 0 {
			w.WriteHeader(f.rdtStatus)
			_, _ = w.Write([]byte(`{"errors":[{"code":"Unauthorized","message":"denied"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"restrictedDataToken":"rdt-token","expiresIn":3600}`))
	})

	mux.HandleFunc("GET /orders/v0/orders", func(w http.ResponseWriter, r *http.Request) {
		f.orderCalls.Add(1)
		f.lastOrdersToken.Store(r.Header.Get("x-amz-access-token"))
		if f.ordersStatus != 0 {
			w.WriteHeader(f.ordersStatus)
			_, _ = w.Write([]byte(`{"errors":[{"code":"Unauthorized","message":"Access to requested resource is denied."}]}`))
			return
		}

		page := 1
		if tok := r.URL.Query().Get("NextToken"); tok != "" {
			_, _ = fmt.Sscanf(tok, "page-%d", &page)
		}

		orders := make([]map[string]any, 0, f.perPage)
		for i := range f.perPage {
			orders = append(orders, map[string]any{
				"AmazonOrderId": fmt.Sprintf("402-%07d-%07d", page, i),
				"PurchaseDate":  "2025-06-10T08:00:00Z",
				"OrderStatus":   "Shipped",
				"OrderTotal":    map[string]string{"CurrencyCode": "INR", "Amount": "450.00"},
			})
		}
		payload := map[string]any{"Orders": orders}
		if page < f.pages {
			payload["NextToken"] = fmt.Sprintf("page-%d", page+1)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"payload": payload})
	})

	mux.HandleFunc("GET /sellers/v1/marketplaceParticipations", func(w http.ResponseWriter, r *http.Request) {
		f.participationCalls.Add(1)
		f.lastProbeToken.Store(r.Header.Get("x-amz-access-token"))
		if f.participationStatus != 0 {
			w.WriteHeader(f.participationStatus)
			return
		}
		if f.noParticipations {
			_, _ = w.Write([]byte(`{"payload":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"payload":[{"marketplace":{"id":"A21TJRUUN4KGV"},"participation":{"isParticipating":true}}]}`))
	})

	return mux
}

func newTestPipeline(t *testing.T, f *fakeUpstream, opts ...spapi.PipelineOption) *spapi.Pipeline {
	t.Helper()

	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)

	client := spapi.NewClient(srv.URL, testMarketplace)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	base := []spapi.PipelineOption{
		spapi.WithPaginatorOptions(spapi.WithPageDelay(0)),
		spapi.WithPipelineNowFunc(func() time.Time { return now }),
		spapi.WithCurrency("INR"),
		spapi.WithSyntheticGenerator(spapi.NewSyntheticGenerator(
			spapi.WithSyntheticSeed(42),
			spapi.WithSyntheticNowFunc(func() time.Time { return now }),
		)),
	}
	return spapi.NewPipeline(client, append(base, opts...)...)
}

func TestPipeline_FetchOrders(t *testing.T) {
	t.Parallel()

	f := &fakeUpstream{pages: 10, perPage: 50}
	p := newTestPipeline(t, f)

	res, err := p.FetchOrders(context.Background(), "access-token", spapi.FetchOptions{
		WindowDays: 30,
		PageSize:   50,
		TotalCap:   200,
	})
	require.NoError(t, err)

	assert.False(t, res.Synthetic)
	assert.Empty(t, res.Notice)
	assert.Len(t, res.Orders, 200)
	assert.Equal(t, int32(4), f.orderCalls.Load())
	assert.Equal(t, "rdt-token", f.lastOrdersToken.Load())

	first := res.Orders[0]
	assert.Equal(t, "402-0000001-0000000", first.OrderID)
	assert.Equal(t, "2025-06-10", first.OrderDate)
	assert.Equal(t, domain.OrderShipped, first.Status)
	assert.Equal(t, "INR 450.00", first.Amount)
}

func TestPipeline_RestrictedTokenFailureIsAbsorbed(t *testing.T) {
	t.Parallel()

	f := &fakeUpstream{pages: 1, perPage: 3, rdtStatus: http.StatusForbidden}
	p := newTestPipeline(t, f)

	res, err := p.FetchOrders(context.Background(), "access-token", spapi.FetchOptions{})
	require.NoError(t, err)

	assert.Len(t, res.Orders, 3)
	assert.Equal(t, int32(1), f.rdtCalls.Load())
	assert.Equal(t, "access-token", f.lastOrdersToken.Load())
}

func TestPipeline_RestrictedDataDisabled(t *testing.T) {
	t.Parallel()

	f := &fakeUpstream{pages: 1, perPage: 1}
	p := newTestPipeline(t, f, spapi.WithRestrictedData(false))

	_, err := p.FetchOrders(context.Background(), "access-token", spapi.FetchOptions{})
	require.NoError(t, err)

	assert.Equal(t, int32(0), f.rdtCalls.Load())
	assert.Equal(t, "access-token", f.lastOrdersToken.Load())
}

func TestPipeline_SyntheticFallback(t *testing.T) {
	t.Parallel()

	f := &fakeUpstream{ordersStatus: http.StatusForbidden}
	p := newTestPipeline(t, f)

	res, err := p.FetchOrders(context.Background(), "access-token", spapi.FetchOptions{WindowDays: 30})
	require.NoError(t, err)

	assert.True(t, res.Synthetic)
	assert.True(t, strings.HasPrefix(res.Notice, "demo data"))
	require.NotEmpty(t, res.Orders)

	oldest := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -30).Format(domain.OrderDateLayout)
	for _, o := range res.Orders {
		assert.True(t, o.Status.Valid())
		assert.GreaterOrEqual(t, o.OrderDate, oldest)
		assert.LessOrEqual(t, o.OrderDate, "2025-06-15")
	}

	// The probe presents the base access token, not the restricted one.
	assert.Equal(t, int32(1), f.participationCalls.Load())
	assert.Equal(t, "access-token", f.lastProbeToken.Load())
}

func TestPipeline_FallbackSuppressed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		upstream *fakeUpstream
		opts     []spapi.PipelineOption
	}{
		{
			name:     "participation probe fails",
			upstream: &fakeUpstream{ordersStatus: http.StatusForbidden, participationStatus: http.StatusForbidden},
		},
		{
			name:     "no participations",
			upstream: &fakeUpstream{ordersStatus: http.StatusForbidden, noParticipations: true},
		},
		{
			name:     "fallback disabled",
			upstream: &fakeUpstream{ordersStatus: http.StatusForbidden},
			opts:     []spapi.PipelineOption{spapi.WithMockFallback(false)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newTestPipeline(t, tt.upstream, tt.opts...)

			res, err := p.FetchOrders(context.Background(), "access-token", spapi.FetchOptions{})
			require.Error(t, err)
			assert.Nil(t, res)

			var denied *spapi.AccessDeniedError
			require.ErrorAs(t, err, &denied)
			assert.Equal(t, spapi.OrdersScope, denied.Scope)
			assert.Contains(t, err.Error(), spapi.OrdersScope)
		})
	}
}

func TestPipeline_ErrorsPropagateWithoutFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: spapi.ErrAuthentication},
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: spapi.ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &fakeUpstream{ordersStatus: tt.status}
			p := newTestPipeline(t, f)

			_, err := p.FetchOrders(context.Background(), "access-token", spapi.FetchOptions{})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, int32(0), f.participationCalls.Load())
		})
	}
}

func TestPipeline_TimeoutIsNetworkError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := spapi.NewClient(srv.URL, testMarketplace,
		spapi.WithClientHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}),
	)
	p := spapi.NewPipeline(client, spapi.WithRestrictedData(false))

	_, err := p.FetchOrders(context.Background(), "access-token", spapi.FetchOptions{})

	var netErr *spapi.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())

	var denied *spapi.AccessDeniedError
	assert.NotErrorAs(t, err, &denied)
}

func TestPipeline_GetOrderCount(t *testing.T) {
	t.Parallel()

	t.Run("real orders", func(t *testing.T) {
		t.Parallel()

		p := newTestPipeline(t, &fakeUpstream{pages: 3, perPage: 7})

		count, synthetic, err := p.GetOrderCount(context.Background(), "access-token", spapi.FetchOptions{})
		require.NoError(t, err)
		assert.Equal(t, 21, count)
		assert.False(t, synthetic)
	})

	t.Run("synthetic orders", func(t *testing.T) {
		t.Parallel()

		p := newTestPipeline(t, &fakeUpstream{ordersStatus: http.StatusForbidden})

		count, synthetic, err := p.GetOrderCount(context.Background(), "access-token", spapi.FetchOptions{})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, 5)
		assert.True(t, synthetic)
	})
}
