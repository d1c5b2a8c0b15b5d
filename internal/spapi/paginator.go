package spapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/donaldgifford/sellerlink/internal/metrics"
)

const (
	defaultPageSize  = 50
	maxPageSize      = 100
	defaultTotalCap  = 200
	defaultPageDelay = 500 * time.Millisecond
)

// Stop reasons reported in PaginateResult.StoppedAt.
const (
	StopNoMoreResults = "no_more_results"
	StopTotalCap      = "total_cap"
)

// Paginator walks the orders endpoint cursor by cursor.
type Paginator struct {
	lister    OrderLister
	logger    *slog.Logger
	pageDelay time.Duration
}

// PaginatorOption configures the Paginator.
type PaginatorOption func(*Paginator)

// WithPageDelay overrides the pause between consecutive page requests.
func WithPageDelay(d time.Duration) PaginatorOption {
	return func(p *Paginator) {
		p.pageDelay = d
	}
}

// WithPaginatorLogger sets the logger.
func WithPaginatorLogger(l *slog.Logger) PaginatorOption {
	return func(p *Paginator) {
		p.logger = l
	}
}

// NewPaginator creates a new Paginator.
func NewPaginator(lister OrderLister, opts ...PaginatorOption) *Paginator {
	p := &Paginator{
		lister:    lister,
		logger:    slog.Default(),
		pageDelay: defaultPageDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PaginateRequest defines a complete retrieval.
type PaginateRequest struct {
	CreatedAfter  time.Time
	CreatedBefore time.Time
	PageSize      int
	TotalCap      int
}

// PaginateResult holds the result of a paginated retrieval.
type PaginateResult struct {
	Orders    []Order
	PagesUsed int
	StoppedAt string // "no_more_results", "total_cap"
}

// Paginate fetches orders page by page, stopping when:
// - The upstream returns no continuation cursor
// - A page comes back empty
// - TotalCap orders have been accumulated (the excess is dropped)
// Upstream page order is preserved. A failure on any page aborts the whole
// retrieval; no partial result is returned.
func (p *Paginator) Paginate(
	ctx context.Context,
	accessToken string,
	req PaginateRequest,
) (*PaginateResult, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)

	totalCap := req.TotalCap
	if totalCap <= 0 {
		totalCap = defaultTotalCap
	}

	result := &PaginateResult{}
	var cursor string

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("order retrieval canceled after %d pages: %w", result.PagesUsed, err)
		}

		resp, err := p.lister.ListOrders(ctx, accessToken, ListOrdersRequest{
			CreatedAfter:      req.CreatedAfter,
			CreatedBefore:     req.CreatedBefore,
			MaxResultsPerPage: pageSize,
			NextToken:         cursor,
		})
		if err != nil {
			return nil, fmt.Errorf("fetching orders page %d: %w", result.PagesUsed+1, err)
		}

		result.PagesUsed++
		metrics.OrderPagesTotal.Inc()

		if len(resp.Orders) == 0 {
			result.StoppedAt = StopNoMoreResults
			return result, nil
		}

		result.Orders = append(result.Orders, resp.Orders...)
		if len(result.Orders) >= totalCap {
			result.Orders = result.Orders[:totalCap]
			result.StoppedAt = StopTotalCap
			return result, nil
		}

		if resp.NextToken == "" {
			result.StoppedAt = StopNoMoreResults
			return result, nil
		}
		cursor = resp.NextToken

		p.logger.Debug("fetched orders page",
			"page", result.PagesUsed,
			"orders", len(result.Orders),
		)

		if err := p.wait(ctx); err != nil {
			return nil, fmt.Errorf("order retrieval canceled after %d pages: %w", result.PagesUsed, err)
		}
	}
}

func (p *Paginator) wait(ctx context.Context) error {
	if p.pageDelay <= 0 {
		return nil
	}
	t := time.NewTimer(p.pageDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
