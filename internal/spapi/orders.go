package spapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const ordersPath = "/orders/v0/orders"

// ListOrdersRequest defines one page request against the orders endpoint.
type ListOrdersRequest struct {
	CreatedAfter      time.Time
	CreatedBefore     time.Time
	MaxResultsPerPage int
	NextToken         string
}

// ListOrdersResponse holds one page of orders. An empty NextToken means the
// upstream has no further pages.
type ListOrdersResponse struct {
	Orders    []Order
	NextToken string
}

type ordersAPIResponse struct {
	Payload struct {
		Orders        []Order `json:"Orders"`
		NextToken     string  `json:"NextToken"`
		CreatedBefore string  `json:"CreatedBefore"`
	} `json:"payload"`
}

// ListOrders implements OrderLister. accessToken may be the base access token
// or a restricted-data token.
func (c *Client) ListOrders(
	ctx context.Context,
	accessToken string,
	req ListOrdersRequest,
) (*ListOrdersResponse, error) {
	var apiResp ordersAPIResponse
	err := c.do(
		ctx, "list_orders", http.MethodGet, ordersPath,
		c.buildOrdersQuery(req), accessToken, nil, &apiResp,
	)
	if err != nil {
		return nil, err
	}

	return &ListOrdersResponse{
		Orders:    apiResp.Payload.Orders,
		NextToken: apiResp.Payload.NextToken,
	}, nil
}

func (c *Client) buildOrdersQuery(req ListOrdersRequest) url.Values {
	params := url.Values{}
	params.Set("MarketplaceIds", c.marketplaceID)
	params.Set("CreatedAfter", req.CreatedAfter.UTC().Format(time.RFC3339))
	if !req.CreatedBefore.IsZero() {
		params.Set("CreatedBefore", req.CreatedBefore.UTC().Format(time.RFC3339))
	}

	limit := req.MaxResultsPerPage
	if limit <= 0 {
		limit = defaultPageSize
	}
	params.Set("MaxResultsPerPage", strconv.Itoa(min(limit, maxPageSize)))

	if req.NextToken != "" {
		params.Set("NextToken", req.NextToken)
	}

	return params
}
