package spapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/donaldgifford/sellerlink/internal/metrics"
)

const restrictedTokenPath = "/tokens/2021-03-01/restrictedDataToken"

// OrdersRestrictedResource asks for buyer and shipping details on the orders
// listing.
var OrdersRestrictedResource = RestrictedResource{
	Method:       http.MethodGet,
	Path:         ordersPath,
	DataElements: []string{"buyerInfo", "shippingAddress"},
}

type restrictedTokenRequest struct {
	RestrictedResources []RestrictedResource `json:"restrictedResources"`
}

// CreateRestrictedDataToken implements RestrictedTokenCreator.
func (c *Client) CreateRestrictedDataToken(
	ctx context.Context,
	accessToken string,
	resources []RestrictedResource,
) (*RestrictedDataToken, error) {
	var rdt RestrictedDataToken
	err := c.do(
		ctx, "create_restricted_data_token", http.MethodPost, restrictedTokenPath,
		nil, accessToken, restrictedTokenRequest{RestrictedResources: resources}, &rdt,
	)
	if err != nil {
		return nil, err
	}
	return &rdt, nil
}

// RDTAcquirer obtains restricted-data tokens on a best-effort basis. Any
// failure is logged and reported as absent so the caller continues with the
// base access token.
type RDTAcquirer struct {
	creator RestrictedTokenCreator
	logger  *slog.Logger
}

// NewRDTAcquirer creates an RDTAcquirer.
func NewRDTAcquirer(creator RestrictedTokenCreator, logger *slog.Logger) *RDTAcquirer {
	if logger == nil {
		logger = slog.Default()
	}
	return &RDTAcquirer{creator: creator, logger: logger}
}

// Acquire returns a restricted-data token for resources, or false when none
// could be obtained.
func (a *RDTAcquirer) Acquire(
	ctx context.Context,
	accessToken string,
	resources []RestrictedResource,
) (string, bool) {
	rdt, err := a.creator.CreateRestrictedDataToken(ctx, accessToken, resources)
	if err != nil {
		metrics.RestrictedTokenRequestsTotal.WithLabelValues("error").Inc()
		a.logger.Warn("restricted data token unavailable, using access token", "error", err)
		return "", false
	}
	if rdt.Token == "" {
		metrics.RestrictedTokenRequestsTotal.WithLabelValues("empty").Inc()
		a.logger.Warn("restricted data token response was empty, using access token")
		return "", false
	}

	metrics.RestrictedTokenRequestsTotal.WithLabelValues("ok").Inc()
	return rdt.Token, true
}
