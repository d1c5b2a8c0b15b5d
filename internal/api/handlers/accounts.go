package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/sellerlink/internal/engine"
	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

// ConnectionService links and unlinks marketplace accounts.
type ConnectionService interface {
	AuthorizationURL(accountID string) (*engine.Authorization, error)
	HandleCallback(ctx context.Context, p engine.CallbackParams) (*domain.ConnectionStatus, error)
	Status(ctx context.Context, accountID string) (*domain.ConnectionStatus, error)
	Disconnect(ctx context.Context, accountID string) error
}

// AccountHandler serves the account linking endpoints.
type AccountHandler struct {
	svc ConnectionService
	log *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc ConnectionService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{svc: svc, log: logger}
}

// AccountInput identifies the local account in the path.
type AccountInput struct {
	AccountID string `path:"account_id" minLength:"1" maxLength:"128" pattern:"^[A-Za-z0-9._-]+$" doc:"Local account identifier"`
}

// ConnectOutput is the response body for starting a connection.
type ConnectOutput struct {
	Body struct {
		AuthorizationURL string `json:"authorization_url" doc:"Consent page the seller must visit"`
		State            string `json:"state"             doc:"Signed state bound to the account"`
	}
}

// Connect issues an authorization URL for the account.
func (h *AccountHandler) Connect(_ context.Context, in *AccountInput) (*ConnectOutput, error) {
	auth, err := h.svc.AuthorizationURL(in.AccountID)
	if err != nil {
		h.log.Error("building authorization url", "account_id", in.AccountID, "error", err)
		return nil, toHTTPError(err)
	}

	resp := &ConnectOutput{}
	resp.Body.AuthorizationURL = auth.URL
	resp.Body.State = auth.State
	return resp, nil
}

// CallbackInput is the OAuth redirect query.
type CallbackInput struct {
	Code             string `query:"code"               doc:"Authorization code"`
	OAuthCode        string `query:"spapi_oauth_code"   doc:"Authorization code (marketplace parameter name)"`
	State            string `query:"state"              doc:"State issued by the connect endpoint"`
	Error            string `query:"error"              doc:"Set when the seller declined"`
	ErrorDescription string `query:"error_description"`
	SellingPartnerID string `query:"selling_partner_id" doc:"Seller identifier"`
}

// ConnectionOutput wraps a connection status.
type ConnectionOutput struct {
	Body *domain.ConnectionStatus
}

// Callback completes the consent flow.
func (h *AccountHandler) Callback(ctx context.Context, in *CallbackInput) (*ConnectionOutput, error) {
	st, err := h.svc.HandleCallback(ctx, engine.CallbackParams{
		Code:             in.Code,
		OAuthCode:        in.OAuthCode,
		State:            in.State,
		Error:            in.Error,
		ErrorDescription: in.ErrorDescription,
		SellingPartnerID: in.SellingPartnerID,
	})
	if err != nil {
		h.log.Warn("oauth callback failed", "error", err)
		return nil, toHTTPError(err)
	}
	return &ConnectionOutput{Body: st}, nil
}

// GetConnection reports the account's link status.
func (h *AccountHandler) GetConnection(ctx context.Context, in *AccountInput) (*ConnectionOutput, error) {
	st, err := h.svc.Status(ctx, in.AccountID)
	if err != nil {
		h.log.Error("reading connection", "account_id", in.AccountID, "error", err)
		return nil, toHTTPError(err)
	}
	return &ConnectionOutput{Body: st}, nil
}

// DeleteConnection removes the stored credential.
func (h *AccountHandler) DeleteConnection(ctx context.Context, in *AccountInput) (*struct{}, error) {
	if err := h.svc.Disconnect(ctx, in.AccountID); err != nil {
		h.log.Error("disconnecting account", "account_id", in.AccountID, "error", err)
		return nil, toHTTPError(err)
	}
	return nil, nil
}

// RegisterAccountRoutes registers account linking endpoints with the Huma API.
func RegisterAccountRoutes(api huma.API, h *AccountHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "connect-account",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts/{account_id}/connect",
		Summary:     "Start marketplace connection",
		Description: "Returns the seller consent URL and the signed state bound to the account.",
		Tags:        []string{"accounts"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Connect)

	huma.Register(api, huma.Operation{
		OperationID: "oauth-callback",
		Method:      http.MethodGet,
		Path:        "/api/v1/oauth/callback",
		Summary:     "OAuth redirect target",
		Description: "Exchanges the authorization code and stores the credential. " +
			"A callback carrying an error is rejected without contacting the token endpoint.",
		Tags:   []string{"accounts"},
		Errors: []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusServiceUnavailable},
	}, h.Callback)

	huma.Register(api, huma.Operation{
		OperationID: "get-connection",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts/{account_id}/connection",
		Summary:     "Get connection status",
		Tags:        []string{"accounts"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.GetConnection)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-connection",
		Method:        http.MethodDelete,
		Path:          "/api/v1/accounts/{account_id}/connection",
		Summary:       "Disconnect account",
		Description:   "Removes the whole stored credential.",
		Tags:          []string{"accounts"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusInternalServerError},
	}, h.DeleteConnection)
}
