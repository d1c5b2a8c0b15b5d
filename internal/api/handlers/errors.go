package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/sellerlink/internal/credential"
	"github.com/donaldgifford/sellerlink/internal/engine"
	"github.com/donaldgifford/sellerlink/internal/spapi"
)

const reconnectRequired = "marketplace account must be reconnected"

// toHTTPError maps a service error to the status callers can act on.
// Upstream error details are not echoed back.
func toHTTPError(err error) huma.StatusError {
	var (
		denied *spapi.AccessDeniedError
		netErr *spapi.NetworkError
		apiErr *spapi.APIError
		exErr  *spapi.AuthExchangeError
		rfErr  *spapi.RefreshError
	)

	switch {
	case errors.Is(err, engine.ErrAuthorizationDenied):
		return huma.Error400BadRequest("authorization was declined by the seller")
	case errors.Is(err, engine.ErrMissingCode):
		return huma.Error400BadRequest("callback is missing the authorization code")
	case errors.Is(err, credential.ErrInvalidState):
		return huma.Error400BadRequest("invalid or expired authorization state")
	case errors.As(err, &exErr):
		return huma.Error401Unauthorized("authorization code was rejected; start the connection again")
	case errors.As(err, &rfErr),
		errors.Is(err, spapi.ErrDisconnected),
		errors.Is(err, spapi.ErrAuthentication):
		return huma.Error401Unauthorized(reconnectRequired)
	case errors.As(err, &denied):
		return huma.Error403Forbidden("access denied: the application lacks the " + denied.Scope + " role")
	case errors.Is(err, spapi.ErrRateLimited):
		return huma.Error429TooManyRequests("marketplace rate limit reached, retry later")
	case errors.As(err, &netErr):
		return huma.Error503ServiceUnavailable("marketplace is unreachable, retry later")
	case errors.Is(err, spapi.ErrConfiguration):
		return huma.Error500InternalServerError("service is misconfigured")
	case errors.As(err, &apiErr):
		return huma.Error502BadGateway("marketplace returned an unexpected error")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
