package credential_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sellerlink/internal/credential"
	"github.com/donaldgifford/sellerlink/internal/credential/mocks"
	"github.com/donaldgifford/sellerlink/internal/metrics"
	"github.com/donaldgifford/sellerlink/internal/spapi"
	"github.com/donaldgifford/sellerlink/internal/store"
	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, s store.Store, expiresAt time.Time, refreshToken string) {
	t.Helper()
	require.NoError(t, s.SaveCredential(context.Background(), &domain.Credential{
		AccountID:      "acct-1",
		AccessToken:    "Atza|old",
		RefreshToken:   refreshToken,
		TokenExpiresAt: expiresAt,
		SellerID:       "A3SELLER",
	}))
}

func newManager(s store.Store, tokens credential.TokenExchanger, opts ...credential.Option) *credential.Manager {
	opts = append([]credential.Option{credential.WithNowFunc(func() time.Time { return testNow })}, opts...)
	return credential.NewManager(s, tokens, opts...)
}

func TestEnsureFreshToken_NoRefreshWhenFresh(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	seed(t, s, testNow.Add(10*time.Minute), "Atzr|old")

	tokens := mocks.NewMockTokenExchanger(t)
	m := newManager(s, tokens)

	got, err := m.EnsureFreshToken(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Atza|old", got)
}

func TestEnsureFreshToken_RefreshesInsideBuffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		expiresAt   time.Time
		rotated     string
		wantRefresh string
	}{
		{
			name:        "expires within buffer, no rotation",
			expiresAt:   testNow.Add(4 * time.Minute),
			wantRefresh: "Atzr|old",
		},
		{
			name:        "exactly at buffer boundary",
			expiresAt:   testNow.Add(5 * time.Minute),
			wantRefresh: "Atzr|old",
		},
		{
			name:        "already expired, rotated refresh token",
			expiresAt:   testNow.Add(-time.Hour),
			rotated:     "Atzr|new",
			wantRefresh: "Atzr|new",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			s := store.NewMemoryStore()
			seed(t, s, tt.expiresAt, "Atzr|old")

			tokens := mocks.NewMockTokenExchanger(t)
			tokens.EXPECT().
				RefreshAccessToken(mock.Anything, "Atzr|old").
				Return(&spapi.TokenBundle{
					AccessToken:  "Atza|new",
					RefreshToken: tt.rotated,
					ExpiresIn:    3600,
					ReceivedAt:   testNow,
				}, nil).
				Once()

			m := newManager(s, tokens)

			got, err := m.EnsureFreshToken(ctx, "acct-1")
			require.NoError(t, err)
			assert.Equal(t, "Atza|new", got)

			stored, err := s.GetCredential(ctx, "acct-1")
			require.NoError(t, err)
			assert.Equal(t, "Atza|new", stored.AccessToken)
			assert.Equal(t, tt.wantRefresh, stored.RefreshToken)
			assert.Equal(t, testNow.Add(time.Hour), stored.TokenExpiresAt)
			assert.Equal(t, "A3SELLER", stored.SellerID)
		})
	}
}

func TestEnsureFreshToken_Disconnected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T, s store.Store)
	}{
		{
			name:  "no credential",
			setup: func(*testing.T, store.Store) {},
		},
		{
			name: "expired without refresh token",
			setup: func(t *testing.T, s store.Store) {
				seed(t, s, testNow.Add(-time.Minute), "")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := store.NewMemoryStore()
			tt.setup(t, s)

			// No token call is expected.
			tokens := mocks.NewMockTokenExchanger(t)
			m := newManager(s, tokens)

			_, err := m.EnsureFreshToken(context.Background(), "acct-1")
			require.ErrorIs(t, err, spapi.ErrDisconnected)
		})
	}
}

func TestEnsureFreshToken_RefreshRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemoryStore()
	seed(t, s, testNow.Add(-time.Minute), "Atzr|revoked")

	tokens := mocks.NewMockTokenExchanger(t)
	tokens.EXPECT().
		RefreshAccessToken(mock.Anything, "Atzr|revoked").
		Return(nil, &spapi.RefreshError{StatusCode: 400, Code: "invalid_grant"}).
		Once()

	m := newManager(s, tokens)

	_, err := m.EnsureFreshToken(ctx, "acct-1")
	require.Error(t, err)

	var refreshErr *spapi.RefreshError
	require.ErrorAs(t, err, &refreshErr)
	assert.True(t, spapi.ReconnectRequired(err))

	// The stored credential is left untouched.
	stored, err := s.GetCredential(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Atza|old", stored.AccessToken)
}

func TestEnsureFreshToken_SingleRefreshUnderConcurrency(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	seed(t, s, testNow.Add(-time.Minute), "Atzr|old")

	var calls atomic.Int32
	release := make(chan struct{})

	tokens := mocks.NewMockTokenExchanger(t)
	tokens.EXPECT().
		RefreshAccessToken(mock.Anything, "Atzr|old").
		RunAndReturn(func(context.Context, string) (*spapi.TokenBundle, error) {
			calls.Add(1)
			<-release
			return &spapi.TokenBundle{
				AccessToken:  "Atza|new",
				RefreshToken: "Atzr|rotated",
				ExpiresIn:    3600,
				ReceivedAt:   testNow,
			}, nil
		}).
		Maybe()

	m := newManager(s, tokens)

	const callers = 16
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = m.EnsureFreshToken(context.Background(), "acct-1")
		}()
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, "Atza|new", results[i])
	}

	stored, err := s.GetCredential(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Atzr|rotated", stored.RefreshToken)
}

func TestEnsureFreshToken_SkipsWhenRefreshedMeanwhile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemoryStore()
	seed(t, s, testNow.Add(-time.Minute), "Atzr|old")

	// The lock holder finishes a refresh before we re-read.
	locker := lockerFunc(func(ctx context.Context, accountID string) (func(), error) {
		err := s.UpdateTokens(ctx, accountID, "Atzr|old", "Atza|other", "Atzr|other", testNow.Add(time.Hour))
		return func() {}, err
	})

	tokens := mocks.NewMockTokenExchanger(t)
	m := newManager(s, tokens, credential.WithLocker(locker))

	got, err := m.EnsureFreshToken(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Atza|other", got)
}

func TestEnsureFreshToken_ReconnectDuringRefreshWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemoryStore()
	seed(t, s, testNow.Add(-time.Minute), "Atzr|old")

	tokens := mocks.NewMockTokenExchanger(t)
	m := newManager(s, tokens)

	tokens.EXPECT().
		ExchangeAuthorizationCode(mock.Anything, "ANnew").
		Return(&spapi.TokenBundle{
			AccessToken:  "Atza|reconnected",
			RefreshToken: "Atzr|reconnected",
			ExpiresIn:    3600,
			ReceivedAt:   testNow,
		}, nil).
		Once()
	tokens.EXPECT().
		RefreshAccessToken(mock.Anything, "Atzr|old").
		RunAndReturn(func(ctx context.Context, _ string) (*spapi.TokenBundle, error) {
			// The seller reconnects while the old grant is being refreshed.
			_, err := m.Connect(ctx, "acct-1", "ANnew", "")
			assert.NoError(t, err)
			return &spapi.TokenBundle{
				AccessToken:  "Atza|stale",
				RefreshToken: "Atzr|stale",
				ExpiresIn:    3600,
				ReceivedAt:   testNow,
			}, nil
		}).
		Once()

	got, err := m.EnsureFreshToken(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Atza|reconnected", got)

	stored, err := s.GetCredential(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Atza|reconnected", stored.AccessToken)
	assert.Equal(t, "Atzr|reconnected", stored.RefreshToken)
}

func TestEnsureFreshToken_CallerCancelDoesNotAbortRefresh(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	seed(t, s, testNow.Add(-time.Minute), "Atzr|old")

	done := make(chan struct{})
	tokens := mocks.NewMockTokenExchanger(t)
	tokens.EXPECT().
		RefreshAccessToken(mock.Anything, "Atzr|old").
		RunAndReturn(func(ctx context.Context, _ string) (*spapi.TokenBundle, error) {
			defer close(done)
			time.Sleep(50 * time.Millisecond)
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return &spapi.TokenBundle{AccessToken: "Atza|new", ExpiresIn: 3600, ReceivedAt: testNow}, nil
		}).
		Once()

	m := newManager(s, tokens)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.EnsureFreshToken(ctx, "acct-1")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	<-done
	require.Eventually(t, func() bool {
		c, err := s.GetCredential(context.Background(), "acct-1")
		return err == nil && c.AccessToken == "Atza|new"
	}, time.Second, 5*time.Millisecond)
}

func TestEnsureFreshToken_LockError(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	seed(t, s, testNow.Add(-time.Minute), "Atzr|old")

	locker := lockerFunc(func(context.Context, string) (func(), error) {
		return nil, errors.New("redis unavailable")
	})

	m := newManager(s, mocks.NewMockTokenExchanger(t), credential.WithLocker(locker))

	_, err := m.EnsureFreshToken(context.Background(), "acct-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquiring refresh lock")
}

func TestConnect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		sellerID     string
		bundleSeller string
		wantSeller   string
	}{
		{name: "seller from callback", sellerID: "A1CALLBACK", bundleSeller: "A2TOKEN", wantSeller: "A1CALLBACK"},
		{name: "seller from token response", bundleSeller: "A2TOKEN", wantSeller: "A2TOKEN"},
		{name: "no seller", wantSeller: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			s := store.NewMemoryStore()

			tokens := mocks.NewMockTokenExchanger(t)
			tokens.EXPECT().
				ExchangeAuthorizationCode(mock.Anything, "ANcode").
				Return(&spapi.TokenBundle{
					AccessToken:  "Atza|first",
					RefreshToken: "Atzr|first",
					ExpiresIn:    3600,
					SellerID:     tt.bundleSeller,
					ReceivedAt:   testNow,
				}, nil).
				Once()

			m := newManager(s, tokens)

			cred, err := m.Connect(ctx, "acct-1", "ANcode", tt.sellerID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSeller, cred.SellerID)

			stored, err := s.GetCredential(ctx, "acct-1")
			require.NoError(t, err)
			assert.Equal(t, "Atza|first", stored.AccessToken)
			assert.Equal(t, "Atzr|first", stored.RefreshToken)
			assert.Equal(t, testNow.Add(time.Hour), stored.TokenExpiresAt)
			require.NotNil(t, stored.ConnectedAt)
		})
	}
}

func TestConnect_ExchangeFailureStoresNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemoryStore()

	tokens := mocks.NewMockTokenExchanger(t)
	tokens.EXPECT().
		ExchangeAuthorizationCode(mock.Anything, "ANexpired").
		Return(nil, &spapi.AuthExchangeError{StatusCode: 400, Code: "invalid_grant"}).
		Once()

	m := newManager(s, tokens)

	_, err := m.Connect(ctx, "acct-1", "ANexpired", "")
	var exErr *spapi.AuthExchangeError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, "invalid_grant", exErr.Code)

	_, err = s.GetCredential(ctx, "acct-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDisconnect(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemoryStore()
	seed(t, s, testNow.Add(time.Hour), "Atzr|old")

	m := newManager(s, mocks.NewMockTokenExchanger(t))

	require.NoError(t, m.Disconnect(ctx, "acct-1"))

	_, err := m.Credential(ctx, "acct-1")
	require.ErrorIs(t, err, spapi.ErrDisconnected)

	_, err = m.EnsureFreshToken(ctx, "acct-1")
	require.ErrorIs(t, err, spapi.ErrDisconnected)

	// Disconnecting twice is fine.
	require.NoError(t, m.Disconnect(ctx, "acct-1"))
}

type lockerFunc func(ctx context.Context, accountID string) (func(), error)

func (f lockerFunc) Lock(ctx context.Context, accountID string) (func(), error) {
	return f(ctx, accountID)
}

func getHistogramSampleCount(h prometheus.Histogram) uint64 {
	ch := make(chan prometheus.Metric, 1)
	h.Collect(ch)
	m := <-ch
	pb := &dto.Metric{}
	_ = m.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestEnsureFreshToken_ObservesLockWait(t *testing.T) {
	// Not parallel: reads the global lock wait histogram.
	s := store.NewMemoryStore()
	seed(t, s, testNow.Add(-time.Minute), "Atzr|old")

	tokens := mocks.NewMockTokenExchanger(t)
	tokens.EXPECT().
		RefreshAccessToken(mock.Anything, "Atzr|old").
		Return(&spapi.TokenBundle{AccessToken: "Atza|new", ExpiresIn: 3600, ReceivedAt: testNow}, nil).
		Once()

	m := newManager(s, tokens, credential.WithLocker(credential.NewStoreLocker(s, time.Minute, nil)))

	before := getHistogramSampleCount(metrics.RefreshLockWaitDuration)
	_, err := m.EnsureFreshToken(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, before+1, getHistogramSampleCount(metrics.RefreshLockWaitDuration))
}
