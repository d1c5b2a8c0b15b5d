// Package credential owns the lifecycle of external marketplace credentials:
// exchanging authorization codes, keeping access tokens fresh, and removing
// credentials on disconnect.
package credential

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/donaldgifford/sellerlink/internal/metrics"
	"github.com/donaldgifford/sellerlink/internal/spapi"
	"github.com/donaldgifford/sellerlink/internal/store"
	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

// DefaultRefreshBuffer is how long before expiry an access token is
// considered stale.
const DefaultRefreshBuffer = 5 * time.Minute

const defaultRefreshTimeout = 30 * time.Second

var tracer = otel.Tracer("github.com/donaldgifford/sellerlink/internal/credential")

// TokenExchanger performs OAuth grants against the authorization server.
type TokenExchanger interface {
	ExchangeAuthorizationCode(ctx context.Context, code string) (*spapi.TokenBundle, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*spapi.TokenBundle, error)
}

// Manager keeps one credential per account usable. Refresh-and-persist for an
// account runs at most once at a time per process (singleflight) and, with a
// Locker, once at a time across processes.
type Manager struct {
	store          store.Store
	tokens         TokenExchanger
	locker         Locker
	group          singleflight.Group
	logger         *slog.Logger
	nowFunc        func() time.Time
	buffer         time.Duration
	refreshTimeout time.Duration
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker sets the cross-instance refresh lock.
func WithLocker(l Locker) Option {
	return func(m *Manager) {
		m.locker = l
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(m *Manager) {
		m.nowFunc = f
	}
}

// WithRefreshBuffer overrides DefaultRefreshBuffer.
func WithRefreshBuffer(d time.Duration) Option {
	return func(m *Manager) {
		m.buffer = d
	}
}

// WithRefreshTimeout bounds a single shared refresh, independent of the
// deadline of whichever caller started it.
func WithRefreshTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.refreshTimeout = d
	}
}

// NewManager creates a credential Manager.
func NewManager(s store.Store, tokens TokenExchanger, opts ...Option) *Manager {
	m := &Manager{
		store:          s,
		tokens:         tokens,
		locker:         nopLocker{},
		logger:         slog.Default(),
		nowFunc:        time.Now,
		buffer:         DefaultRefreshBuffer,
		refreshTimeout: defaultRefreshTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EnsureFreshToken returns an access token for accountID that is valid for
// at least the refresh buffer, refreshing and persisting it first if needed.
func (m *Manager) EnsureFreshToken(ctx context.Context, accountID string) (string, error) {
	cred, err := m.load(ctx, accountID)
	if err != nil {
		return "", err
	}
	if !cred.Expired(m.nowFunc(), m.buffer) {
		return cred.AccessToken, nil
	}
	if cred.RefreshToken == "" {
		return "", fmt.Errorf("%w: no refresh token stored", spapi.ErrDisconnected)
	}

	// The shared refresh must not die with the first caller's context.
	ch := m.group.DoChan(accountID, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.refreshTimeout)
		defer cancel()
		return m.refresh(fctx, accountID)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil //nolint:errcheck // refresh always returns a string
	}
}

func (m *Manager) refresh(ctx context.Context, accountID string) (string, error) {
	ctx, span := tracer.Start(ctx, "credential.Refresh")
	defer span.End()

	token, err := m.lockedRefresh(ctx, accountID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return token, err
}

func (m *Manager) lockedRefresh(ctx context.Context, accountID string) (string, error) {
	start := time.Now()
	unlock, err := m.locker.Lock(ctx, accountID)
	if err != nil {
		return "", fmt.Errorf("acquiring refresh lock: %w", err)
	}
	defer unlock()
	metrics.RefreshLockWaitDuration.Observe(time.Since(start).Seconds())

	// Re-read under the lock: another caller or instance may have just
	// refreshed, and refreshing again could invalidate its rotated token.
	cred, err := m.load(ctx, accountID)
	if err != nil {
		return "", err
	}
	if !cred.Expired(m.nowFunc(), m.buffer) {
		metrics.TokenRefreshesTotal.WithLabelValues("skipped").Inc()
		return cred.AccessToken, nil
	}
	if cred.RefreshToken == "" {
		return "", fmt.Errorf("%w: no refresh token stored", spapi.ErrDisconnected)
	}

	bundle, err := m.tokens.RefreshAccessToken(ctx, cred.RefreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		m.logger.Warn("access token refresh failed",
			"account_id", accountID,
			"reconnect_required", spapi.ReconnectRequired(err),
			"error", err,
		)
		return "", fmt.Errorf("refreshing access token: %w", err)
	}

	rotated := bundle.RefreshToken != ""
	refreshToken := cred.RefreshToken
	if rotated {
		refreshToken = bundle.RefreshToken
	}

	expiresAt := bundle.ExpiresAt()
	err = m.store.UpdateTokens(ctx, accountID, cred.RefreshToken, bundle.AccessToken, refreshToken, expiresAt)
	if errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("%w: credential removed during refresh", spapi.ErrDisconnected)
	}
	if errors.Is(err, store.ErrStaleCredential) {
		// A reconnect replaced the grant mid-refresh; its tokens win.
		metrics.TokenRefreshesTotal.WithLabelValues("skipped").Inc()
		m.logger.Info("credential replaced during refresh, discarding refreshed tokens", "account_id", accountID)
		return m.currentToken(ctx, accountID)
	}
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("persisting refreshed tokens: %w", err)
	}

	metrics.TokenRefreshesTotal.WithLabelValues("ok").Inc()
	trace := []any{"account_id", accountID, "expires_at", expiresAt, "rotated", rotated}
	m.logger.Info("access token refreshed", trace...)

	return bundle.AccessToken, nil
}

// currentToken returns the stored access token when it is still fresh.
func (m *Manager) currentToken(ctx context.Context, accountID string) (string, error) {
	cred, err := m.load(ctx, accountID)
	if err != nil {
		return "", err
	}
	if cred.Expired(m.nowFunc(), m.buffer) {
		return "", fmt.Errorf("refreshing access token: %w", store.ErrStaleCredential)
	}
	return cred.AccessToken, nil
}

// Connect exchanges a single-use authorization code and stores the resulting
// credential, replacing any previous one for the account.
func (m *Manager) Connect(
	ctx context.Context,
	accountID, code, sellerID string,
) (*domain.Credential, error) {
	ctx, span := tracer.Start(ctx, "credential.Connect")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", accountID))

	bundle, err := m.tokens.ExchangeAuthorizationCode(ctx, code)
	if err != nil {
		metrics.TokenExchangesTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	metrics.TokenExchangesTotal.WithLabelValues("ok").Inc()

	if sellerID == "" {
		sellerID = bundle.SellerID
	}

	cred := &domain.Credential{
		AccountID:      accountID,
		AccessToken:    bundle.AccessToken,
		RefreshToken:   bundle.RefreshToken,
		TokenExpiresAt: bundle.ExpiresAt(),
		SellerID:       sellerID,
	}
	if err := m.store.SaveCredential(ctx, cred); err != nil {
		return nil, fmt.Errorf("saving credential: %w", err)
	}
	m.group.Forget(accountID)

	m.logger.Info("account connected", "account_id", accountID, "seller_id", sellerID)
	return cred, nil
}

// Disconnect removes the whole credential for accountID.
func (m *Manager) Disconnect(ctx context.Context, accountID string) error {
	if err := m.store.DeleteCredential(ctx, accountID); err != nil {
		return fmt.Errorf("removing credential: %w", err)
	}
	m.group.Forget(accountID)

	m.logger.Info("account disconnected", "account_id", accountID)
	return nil
}

// Credential returns the stored credential, or ErrDisconnected.
func (m *Manager) Credential(ctx context.Context, accountID string) (*domain.Credential, error) {
	return m.load(ctx, accountID)
}

func (m *Manager) load(ctx context.Context, accountID string) (*domain.Credential, error) {
	cred, err := m.store.GetCredential(ctx, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: account %s has no credential", spapi.ErrDisconnected, accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading credential: %w", err)
	}
	if cred.AccessToken == "" && cred.RefreshToken == "" {
		return nil, fmt.Errorf("%w: account %s has an empty credential", spapi.ErrDisconnected, accountID)
	}
	return cred, nil
}
