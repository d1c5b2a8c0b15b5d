package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

// OrdersParams bounds an order retrieval. Zero values use server defaults.
type OrdersParams struct {
	WindowDays int
	PageSize   int
	Limit      int
}

func (p *OrdersParams) query() string {
	if p == nil {
		return ""
	}
	q := url.Values{}
	if p.WindowDays > 0 {
		q.Set("window_days", strconv.Itoa(p.WindowDays))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// OrderCount is the count endpoint's answer.
type OrderCount struct {
	Count     int  `json:"count"`
	Synthetic bool `json:"synthetic"`
}

// Orders returns recent orders for accountID.
func (c *Client) Orders(ctx context.Context, accountID string, params *OrdersParams) (*domain.OrderResult, error) {
	var res domain.OrderResult
	if err := c.get(ctx, accountPath(accountID)+"/orders"+params.query(), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CountOrders returns how many orders fall in the window.
func (c *Client) CountOrders(ctx context.Context, accountID string, windowDays int) (*OrderCount, error) {
	var n OrderCount
	path := accountPath(accountID) + "/orders/count" + (&OrdersParams{WindowDays: windowDays}).query()
	if err := c.get(ctx, path, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
