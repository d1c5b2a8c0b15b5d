// Package spapi provides clients for the marketplace authorization server and
// the regional data API, plus the order retrieval pipeline built on them.
// Upstream calls sit behind small interfaces for testability.
package spapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/donaldgifford/sellerlink/internal/metrics"
)

// requestDuration is exported over OTLP when telemetry is enabled; the
// global meter is a no-op otherwise.
var requestDuration, _ = otel.Meter("github.com/donaldgifford/sellerlink/internal/spapi").
	Float64Histogram("sellerlink.spapi.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of data API requests."),
	)

// OrderLister fetches one page of orders.
type OrderLister interface {
	ListOrders(ctx context.Context, accessToken string, req ListOrdersRequest) (*ListOrdersResponse, error)
}

// RestrictedTokenCreator mints restricted-data tokens.
type RestrictedTokenCreator interface {
	CreateRestrictedDataToken(
		ctx context.Context,
		accessToken string,
		resources []RestrictedResource,
	) (*RestrictedDataToken, error)
}

// ParticipationLister lists the marketplaces the connected seller takes part in.
type ParticipationLister interface {
	GetMarketplaceParticipations(ctx context.Context, accessToken string) ([]Participation, error)
}

// API is the subset of the data API the order pipeline uses.
type API interface {
	OrderLister
	RestrictedTokenCreator
	ParticipationLister
}

const defaultUserAgent = "sellerlink/1.0 (Language=Go)"

// Client calls the regional data API. It holds no token state; every call
// takes the access token to present.
type Client struct {
	baseURL       string
	marketplaceID string
	userAgent     string
	client        *http.Client
	rateLimiter   *RateLimiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithClientHTTPClient overrides the default HTTP client.
func WithClientHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter. When set, every call goes through
// Wait() first and the limiter follows the rate reported by the upstream.
func WithRateLimiter(r *RateLimiter) ClientOption {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a data API client for the given endpoint and marketplace.
func NewClient(baseURL, marketplaceID string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:       baseURL,
		marketplaceID: marketplaceID,
		userAgent:     defaultUserAgent,
		client:        &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MarketplaceID returns the marketplace this client queries.
func (c *Client) MarketplaceID() string {
	return c.marketplaceID
}

type apiErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

type errorEnvelope struct {
	Errors []apiErrorDetail `json:"errors"`
}

// do performs one authenticated call and decodes a 2xx body into out.
func (c *Client) do(
	ctx context.Context,
	op, method, path string,
	query url.Values,
	accessToken string,
	in, out any,
) error {
	bucket := rateBucket(ctx, accessToken)
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx, bucket, op); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.SPAPIDailyLimitHits.Inc()
			}
			return err
		}
		metrics.SPAPIDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}

	var body io.Reader = http.NoBody
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("x-amz-access-token", accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.SPAPICallsTotal.WithLabelValues(op, "network_error").Inc()
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	metrics.SPAPICallsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
	requestDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("operation", op),
		attribute.Int("http.response.status_code", resp.StatusCode),
	))
	if c.rateLimiter != nil {
		if v, ok := c.rateLimiter.Observe(bucket, op, resp.Header.Get(RateLimitHeader)); ok {
			metrics.SPAPIRateLimit.WithLabelValues(op).Set(v)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, path, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parsing %s response: %w", op, err)
	}
	return nil
}

// rateBucket names the rate limit bucket a call draws from: the account
// carried by ctx, or the token itself for callers that do not set one.
func rateBucket(ctx context.Context, accessToken string) string {
	if id := AccountFromContext(ctx); id != "" {
		return id
	}
	return accessToken
}

func newAPIError(status int, endpoint string, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Endpoint: endpoint}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Errors) > 0 {
		apiErr.Code = env.Errors[0].Code
		apiErr.Message = env.Errors[0].Message
		return apiErr
	}

	apiErr.Message = string(body)
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
