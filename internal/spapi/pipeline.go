package spapi

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/sellerlink/internal/metrics"
	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

// OrdersScope is the upstream role that grants access to the orders endpoint.
const OrdersScope = "Inventory and Order Tracking"

const defaultWindowDays = 30

var tracer = otel.Tracer("github.com/donaldgifford/sellerlink/internal/spapi")

// FetchOptions bounds a single retrieval. Zero values take the pipeline
// defaults.
type FetchOptions struct {
	WindowDays int
	PageSize   int
	TotalCap   int
}

// Pipeline retrieves a window of orders for one access token, falling back to
// synthetic data when the account is connected but lacks the orders role.
type Pipeline struct {
	api            API
	paginator      *Paginator
	rdt            *RDTAcquirer
	synth          *SyntheticGenerator
	logger         *slog.Logger
	nowFunc        func() time.Time
	currency       string
	mockFallback   bool
	restrictedData bool
	defaults       FetchOptions
	paginatorOpts  []PaginatorOption
}

// PipelineOption configures the Pipeline.
type PipelineOption func(*Pipeline)

// WithMockFallback toggles the synthetic fallback on access denial.
func WithMockFallback(enabled bool) PipelineOption {
	return func(p *Pipeline) {
		p.mockFallback = enabled
	}
}

// WithRestrictedData toggles the restricted-data token step.
func WithRestrictedData(enabled bool) PipelineOption {
	return func(p *Pipeline) {
		p.restrictedData = enabled
	}
}

// WithPipelineLogger sets the logger.
func WithPipelineLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithPipelineNowFunc overrides the time function for testing.
func WithPipelineNowFunc(f func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		p.nowFunc = f
	}
}

// WithPaginatorOptions passes options through to the underlying Paginator.
func WithPaginatorOptions(opts ...PaginatorOption) PipelineOption {
	return func(p *Pipeline) {
		p.paginatorOpts = append(p.paginatorOpts, opts...)
	}
}

// WithSyntheticGenerator overrides the synthetic data generator.
func WithSyntheticGenerator(g *SyntheticGenerator) PipelineOption {
	return func(p *Pipeline) {
		p.synth = g
	}
}

// WithCurrency sets the currency used for synthetic amounts.
func WithCurrency(c string) PipelineOption {
	return func(p *Pipeline) {
		p.currency = c
	}
}

// WithDefaults sets the retrieval bounds used when a call leaves them zero.
func WithDefaults(d FetchOptions) PipelineOption {
	return func(p *Pipeline) {
		p.defaults = d
	}
}

// NewPipeline creates an order retrieval pipeline over api.
func NewPipeline(api API, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		api:            api,
		logger:         slog.Default(),
		nowFunc:        time.Now,
		currency:       "USD",
		mockFallback:   true,
		restrictedData: true,
		defaults: FetchOptions{
			WindowDays: defaultWindowDays,
			PageSize:   defaultPageSize,
			TotalCap:   defaultTotalCap,
		},
	}
	for _, opt := range opts {
		opt(p)
	}

	p.paginator = NewPaginator(api, append(
		[]PaginatorOption{WithPaginatorLogger(p.logger)},
		p.paginatorOpts...,
	)...)
	p.rdt = NewRDTAcquirer(api, p.logger)
	if p.synth == nil {
		p.synth = NewSyntheticGenerator()
	}
	return p
}

// FetchOrders retrieves the orders created in the last WindowDays days.
// Upstream page order is preserved. On a 403 from the orders endpoint the
// pipeline probes marketplace participation: if the probe succeeds a
// labeled synthetic set is returned, otherwise an AccessDeniedError.
func (p *Pipeline) FetchOrders(
	ctx context.Context,
	accessToken string,
	opts FetchOptions,
) (*domain.OrderResult, error) {
	opts = p.resolve(opts)

	ctx, span := tracer.Start(ctx, "spapi.FetchOrders", trace.WithAttributes(
		attribute.Int("orders.window_days", opts.WindowDays),
		attribute.Int("orders.page_size", opts.PageSize),
		attribute.Int("orders.total_cap", opts.TotalCap),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.OrderFetchDuration.Observe(time.Since(start).Seconds())
	}()

	now := p.nowFunc().UTC()
	req := PaginateRequest{
		CreatedAfter:  now.AddDate(0, 0, -opts.WindowDays),
		CreatedBefore: now,
		PageSize:      opts.PageSize,
		TotalCap:      opts.TotalCap,
	}

	dataToken := accessToken
	if p.restrictedData {
		if rdt, ok := p.rdt.Acquire(ctx, accessToken, []RestrictedResource{OrdersRestrictedResource}); ok {
			dataToken = rdt
		}
	}
	span.SetAttributes(attribute.Bool("orders.restricted_token", dataToken != accessToken))

	res, err := p.paginator.Paginate(ctx, dataToken, req)
	if err != nil {
		result, ferr := p.handleFailure(ctx, accessToken, opts, err)
		if ferr != nil {
			span.RecordError(ferr)
			span.SetStatus(codes.Error, ferr.Error())
			return nil, ferr
		}
		span.SetAttributes(attribute.Bool("orders.synthetic", true))
		return result, nil
	}

	span.SetAttributes(
		attribute.Int("orders.pages", res.PagesUsed),
		attribute.Int("orders.count", len(res.Orders)),
		attribute.String("orders.stopped_at", res.StoppedAt),
	)
	metrics.OrdersFetchedTotal.Add(float64(len(res.Orders)))

	p.logger.Info("orders fetched",
		"orders", len(res.Orders),
		"pages", res.PagesUsed,
		"stopped_at", res.StoppedAt,
	)

	return &domain.OrderResult{Orders: ToOrderRecords(res.Orders)}, nil
}

// GetOrderCount is the length of FetchOrders under the same window. The
// second return reports whether the count is of synthetic data.
func (p *Pipeline) GetOrderCount(
	ctx context.Context,
	accessToken string,
	opts FetchOptions,
) (int, bool, error) {
	res, err := p.FetchOrders(ctx, accessToken, opts)
	if err != nil {
		return 0, false, err
	}
	return len(res.Orders), res.Synthetic, nil
}

func (p *Pipeline) handleFailure(
	ctx context.Context,
	accessToken string,
	opts FetchOptions,
	err error,
) (*domain.OrderResult, error) {
	if !errors.Is(err, ErrForbidden) {
		return nil, err
	}

	if !p.mockFallback {
		return nil, &AccessDeniedError{Scope: OrdersScope, Err: err}
	}

	if !p.hasParticipation(ctx, accessToken) {
		return nil, &AccessDeniedError{Scope: OrdersScope, Err: err}
	}

	metrics.SyntheticFallbacksTotal.Inc()
	p.logger.Warn("orders access denied, returning synthetic data", "error", err)

	return &domain.OrderResult{
		Orders:    p.synth.Generate(opts.WindowDays, p.currency),
		Synthetic: true,
		Notice:    SyntheticNotice,
	}, nil
}

// hasParticipation reports whether the access token can see at least one
// marketplace participation. Failures are absorbed.
func (p *Pipeline) hasParticipation(ctx context.Context, accessToken string) bool {
	parts, err := p.api.GetMarketplaceParticipations(ctx, accessToken)
	if err != nil {
		p.logger.Warn("marketplace participation probe failed", "error", err)
		return false
	}
	return len(parts) > 0
}

func (p *Pipeline) resolve(opts FetchOptions) FetchOptions {
	if opts.WindowDays <= 0 {
		opts.WindowDays = p.defaults.WindowDays
	}
	if opts.PageSize <= 0 {
		opts.PageSize = p.defaults.PageSize
	}
	if opts.TotalCap <= 0 {
		opts.TotalCap = p.defaults.TotalCap
	}
	return opts
}
