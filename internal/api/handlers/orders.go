package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/sellerlink/internal/spapi"
	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

// OrderService serves order activity for linked accounts.
type OrderService interface {
	Orders(ctx context.Context, accountID string, opts spapi.FetchOptions) (*domain.OrderResult, error)
	OrderCount(ctx context.Context, accountID string, opts spapi.FetchOptions) (int, bool, error)
}

// OrdersHandler serves the order endpoints.
type OrdersHandler struct {
	svc OrderService
	log *slog.Logger
}

// NewOrdersHandler creates a new OrdersHandler.
func NewOrdersHandler(svc OrderService, logger *slog.Logger) *OrdersHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrdersHandler{svc: svc, log: logger}
}

// ListOrdersInput selects the retrieval window and bounds.
type ListOrdersInput struct {
	AccountInput
	WindowDays int `query:"window_days" minimum:"1" maximum:"365"  doc:"Days back from now (default from config)"`
	PageSize   int `query:"page_size"   minimum:"1" maximum:"100"  doc:"Orders per upstream page"`
	Limit      int `query:"limit"       minimum:"1" maximum:"1000" doc:"Maximum orders returned"`
}

// ListOrdersOutput is the order retrieval result.
type ListOrdersOutput struct {
	Body *domain.OrderResult
}

// ListOrders returns recent orders. Synthetic results are labelled.
func (h *OrdersHandler) ListOrders(ctx context.Context, in *ListOrdersInput) (*ListOrdersOutput, error) {
	res, err := h.svc.Orders(ctx, in.AccountID, spapi.FetchOptions{
		WindowDays: in.WindowDays,
		PageSize:   in.PageSize,
		TotalCap:   in.Limit,
	})
	if err != nil {
		h.log.Warn("listing orders", "account_id", in.AccountID, "error", err)
		return nil, toHTTPError(err)
	}
	return &ListOrdersOutput{Body: res}, nil
}

// CountOrdersInput selects the counting window.
type CountOrdersInput struct {
	AccountInput
	WindowDays int `query:"window_days" minimum:"1" maximum:"365" doc:"Days back from now (default from config)"`
}

// CountOrdersOutput is the order count.
type CountOrdersOutput struct {
	Body struct {
		Count     int  `json:"count"     example:"42"`
		Synthetic bool `json:"synthetic" doc:"True when counting demo data"`
	}
}

// CountOrders returns how many orders ListOrders would return.
func (h *OrdersHandler) CountOrders(ctx context.Context, in *CountOrdersInput) (*CountOrdersOutput, error) {
	n, synthetic, err := h.svc.OrderCount(ctx, in.AccountID, spapi.FetchOptions{WindowDays: in.WindowDays})
	if err != nil {
		h.log.Warn("counting orders", "account_id", in.AccountID, "error", err)
		return nil, toHTTPError(err)
	}

	resp := &CountOrdersOutput{}
	resp.Body.Count = n
	resp.Body.Synthetic = synthetic
	return resp, nil
}

var orderErrors = []int{
	http.StatusUnauthorized,
	http.StatusForbidden,
	http.StatusTooManyRequests,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
}

// RegisterOrderRoutes registers order endpoints with the Huma API.
func RegisterOrderRoutes(api huma.API, h *OrdersHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-orders",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts/{account_id}/orders",
		Summary:     "List recent orders",
		Description: "Fetches orders created in the window, newest pages first as returned upstream. " +
			"When the orders role is missing but the account is otherwise valid, labelled demo data is returned.",
		Tags:   []string{"orders"},
		Errors: orderErrors,
	}, h.ListOrders)

	huma.Register(api, huma.Operation{
		OperationID: "count-orders",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts/{account_id}/orders/count",
		Summary:     "Count recent orders",
		Tags:        []string{"orders"},
		Errors:      orderErrors,
	}, h.CountOrders)
}
