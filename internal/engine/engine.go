// Package engine ties the credential lifecycle to order retrieval: it runs
// the authorization flow, keeps tokens fresh, and serves order activity for
// a local account.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/sellerlink/internal/credential"
	"github.com/donaldgifford/sellerlink/internal/metrics"
	"github.com/donaldgifford/sellerlink/internal/spapi"
	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

var (
	// ErrAuthorizationDenied is returned when the seller declined consent.
	ErrAuthorizationDenied = errors.New("authorization denied")
	// ErrMissingCode is returned when a callback carries neither an error
	// nor an authorization code.
	ErrMissingCode = errors.New("callback carries no authorization code")
)

var tracer = otel.Tracer("github.com/donaldgifford/sellerlink/internal/engine")

// TokenManager is the credential lifecycle the engine relies on.
type TokenManager interface {
	EnsureFreshToken(ctx context.Context, accountID string) (string, error)
	Connect(ctx context.Context, accountID, code, sellerID string) (*domain.Credential, error)
	Disconnect(ctx context.Context, accountID string) error
	Credential(ctx context.Context, accountID string) (*domain.Credential, error)
}

// OrderFetcher retrieves orders with an access token.
type OrderFetcher interface {
	FetchOrders(ctx context.Context, accessToken string, opts spapi.FetchOptions) (*domain.OrderResult, error)
	GetOrderCount(ctx context.Context, accessToken string, opts spapi.FetchOptions) (int, bool, error)
}

// Engine orchestrates account linking and order retrieval.
type Engine struct {
	tokens TokenManager
	orders OrderFetcher
	state  *credential.StateCodec
	log    *slog.Logger

	authURL       string
	applicationID string
	draftApp      bool
	region        string
	marketplaceID string
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	tm TokenManager,
	of OrderFetcher,
	state *credential.StateCodec,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		tokens:   tm,
		orders:   of,
		state:    state,
		log:      slog.Default(),
		draftApp: true,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithAuthorization sets the consent page and application used to build
// authorization URLs.
func WithAuthorization(authURL, applicationID string, draftApp bool) EngineOption {
	return func(e *Engine) {
		e.authURL = authURL
		e.applicationID = applicationID
		e.draftApp = draftApp
	}
}

// WithMarketplace records the configured region and marketplace for status
// reporting.
func WithMarketplace(region, marketplaceID string) EngineOption {
	return func(e *Engine) {
		e.region = region
		e.marketplaceID = marketplaceID
	}
}

// Authorization is the start of the consent flow for one account.
type Authorization struct {
	URL   string
	State string
}

// AuthorizationURL issues a state bound to accountID and returns the consent
// URL the seller must visit.
func (eng *Engine) AuthorizationURL(accountID string) (*Authorization, error) {
	state, err := eng.state.Issue(accountID)
	if err != nil {
		return nil, fmt.Errorf("issuing state: %w", err)
	}

	u, err := credential.AuthorizationURL(eng.authURL, eng.applicationID, state, eng.draftApp)
	if err != nil {
		return nil, err
	}

	return &Authorization{URL: u, State: state}, nil
}

// CallbackParams are the query parameters of the OAuth redirect.
type CallbackParams struct {
	Code             string
	OAuthCode        string
	State            string
	Error            string
	ErrorDescription string
	SellingPartnerID string
}

// HandleCallback completes the consent flow. A callback carrying an error is
// rejected before any token call is made.
func (eng *Engine) HandleCallback(ctx context.Context, p CallbackParams) (*domain.ConnectionStatus, error) {
	if p.Error != "" {
		metrics.ConnectionsTotal.WithLabelValues("connect", "denied").Inc()
		eng.log.Warn("authorization denied", "error", p.Error, "description", p.ErrorDescription)
		if p.ErrorDescription != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrAuthorizationDenied, p.Error, p.ErrorDescription)
		}
		return nil, fmt.Errorf("%w: %s", ErrAuthorizationDenied, p.Error)
	}

	accountID, err := eng.state.Verify(p.State)
	if err != nil {
		metrics.ConnectionsTotal.WithLabelValues("connect", "invalid_state").Inc()
		return nil, err
	}

	code := p.Code
	if code == "" {
		code = p.OAuthCode
	}
	if code == "" {
		metrics.ConnectionsTotal.WithLabelValues("connect", "error").Inc()
		return nil, ErrMissingCode
	}

	cred, err := eng.tokens.Connect(ctx, accountID, code, p.SellingPartnerID)
	if err != nil {
		metrics.ConnectionsTotal.WithLabelValues("connect", "error").Inc()
		return nil, err
	}
	metrics.ConnectionsTotal.WithLabelValues("connect", "ok").Inc()

	return eng.statusOf(accountID, cred), nil
}

// Status reports whether accountID is linked. A missing credential is not an
// error.
func (eng *Engine) Status(ctx context.Context, accountID string) (*domain.ConnectionStatus, error) {
	cred, err := eng.tokens.Credential(ctx, accountID)
	if errors.Is(err, spapi.ErrDisconnected) {
		return eng.statusOf(accountID, nil), nil
	}
	if err != nil {
		return nil, err
	}
	return eng.statusOf(accountID, cred), nil
}

// Disconnect removes the account's credential.
func (eng *Engine) Disconnect(ctx context.Context, accountID string) error {
	if err := eng.tokens.Disconnect(ctx, accountID); err != nil {
		metrics.ConnectionsTotal.WithLabelValues("disconnect", "error").Inc()
		return err
	}
	metrics.ConnectionsTotal.WithLabelValues("disconnect", "ok").Inc()
	return nil
}

// Orders returns the recent orders of a linked account.
func (eng *Engine) Orders(
	ctx context.Context,
	accountID string,
	opts spapi.FetchOptions,
) (*domain.OrderResult, error) {
	ctx, span := tracer.Start(ctx, "engine.Orders",
		trace.WithAttributes(attribute.String("account.id", accountID)))
	defer span.End()

	token, err := eng.tokens.EnsureFreshToken(ctx, accountID)
	if err != nil {
		return nil, spanError(span, err)
	}

	res, err := eng.orders.FetchOrders(spapi.WithAccount(ctx, accountID), token, opts)
	if err != nil {
		eng.log.Error("order retrieval failed", "account_id", accountID, "error", err)
		return nil, spanError(span, err)
	}

	if res.Synthetic {
		eng.log.Info("serving synthetic orders", "account_id", accountID, "orders", len(res.Orders))
	}
	return res, nil
}

// OrderCount returns how many orders Orders would return for the same
// window, and whether they are synthetic.
func (eng *Engine) OrderCount(
	ctx context.Context,
	accountID string,
	opts spapi.FetchOptions,
) (int, bool, error) {
	ctx, span := tracer.Start(ctx, "engine.OrderCount",
		trace.WithAttributes(attribute.String("account.id", accountID)))
	defer span.End()

	token, err := eng.tokens.EnsureFreshToken(ctx, accountID)
	if err != nil {
		return 0, false, spanError(span, err)
	}

	n, synthetic, err := eng.orders.GetOrderCount(spapi.WithAccount(ctx, accountID), token, opts)
	if err != nil {
		return 0, false, spanError(span, err)
	}
	return n, synthetic, nil
}

func (eng *Engine) statusOf(accountID string, cred *domain.Credential) *domain.ConnectionStatus {
	st := &domain.ConnectionStatus{
		AccountID:     accountID,
		Region:        eng.region,
		MarketplaceID: eng.marketplaceID,
	}
	if cred == nil {
		return st
	}
	expires := cred.TokenExpiresAt
	st.Connected = true
	st.SellerID = cred.SellerID
	st.ConnectedAt = cred.ConnectedAt
	st.TokenExpiresAt = &expires
	return st
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
