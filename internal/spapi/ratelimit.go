package spapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitHeader carries the per-operation request rate the upstream
// currently grants the caller.
const RateLimitHeader = "x-amzn-RateLimit-Limit"

// pruneAt is the bucket count above which idle buckets are dropped.
const pruneAt = 256

// ErrDailyLimitReached is returned when the local daily call budget has been
// exhausted.
var ErrDailyLimitReached = errors.New("daily API call budget reached")

type accountKey struct{}

// WithAccount tags ctx with the account whose upstream calls it carries.
// The RateLimiter keeps a separate bucket per account and operation.
func WithAccount(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountKey{}, accountID)
}

// AccountFromContext returns the account set by WithAccount, or "".
func AccountFromContext(ctx context.Context) string {
	id, _ := ctx.Value(accountKey{}).(string)
	return id
}

type bucketKey struct {
	account string
	op      string
}

// RateLimiter paces calls to the data endpoints. Upstream usage plans are
// per seller and per operation, so each (account, operation) pair gets its
// own token bucket, adjusted from response headers. A rolling 24-hour window
// caps total calls per deployment.
type RateLimiter struct {
	perSecond rate.Limit
	burst     int
	maxDaily  int64
	nowFunc   func() time.Time

	mu          sync.Mutex
	buckets     map[bucketKey]*rate.Limiter
	advertised  map[string]rate.Limit
	daily       int64
	windowStart time.Time
	resetAt     time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a rate limiter. perSecond and burst seed every new
// bucket until the upstream advertises a rate for that operation; maxDaily
// is shared by all buckets.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		perSecond:  rate.Limit(perSecond),
		burst:      burst,
		maxDaily:   maxDaily,
		nowFunc:    time.Now,
		buckets:    make(map[bucketKey]*rate.Limiter),
		advertised: make(map[string]rate.Limit),
	}
	for _, opt := range opts {
		opt(r)
	}
	now := r.nowFunc()
	r.windowStart = now
	r.resetAt = now.Add(24 * time.Hour)
	return r
}

// Wait blocks until account may call op or ctx is done. Every failure wraps
// ErrRateLimited.
func (r *RateLimiter) Wait(ctx context.Context, account, op string) error {
	lim, err := r.reserve(account, op)
	if err != nil {
		return err
	}

	if err := lim.Wait(ctx); err != nil {
		r.refund()
		// rate.Limiter does not wrap the context error when it gives up
		// early on a deadline.
		if cerr := ctx.Err(); cerr != nil {
			err = cerr
		} else if _, ok := ctx.Deadline(); ok {
			err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		}
		return fmt.Errorf("%w: waiting for %s slot: %w", ErrRateLimited, op, err)
	}
	return nil
}

// reserve counts the call against the daily budget and returns the bucket
// it has to wait on.
func (r *RateLimiter) reserve(account, op string) (*rate.Limiter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	r.resetIfExpired(now)

	if r.daily >= r.maxDaily {
		return nil, fmt.Errorf("%w: %w (%d/%d)", ErrRateLimited, ErrDailyLimitReached, r.daily, r.maxDaily)
	}
	r.daily++

	key := bucketKey{account: account, op: op}
	lim, ok := r.buckets[key]
	if !ok {
		if len(r.buckets) >= pruneAt {
			r.prune(now)
		}
		limit := r.perSecond
		if adv, ok := r.advertised[op]; ok {
			limit = adv
		}
		lim = rate.NewLimiter(limit, r.burst)
		r.buckets[key] = lim
	}
	return lim, nil
}

func (r *RateLimiter) refund() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.daily > 0 {
		r.daily--
	}
}

// prune drops buckets that have refilled completely; a fresh bucket behaves
// the same. Callers hold mu.
func (r *RateLimiter) prune(now time.Time) {
	for k, lim := range r.buckets {
		if lim.TokensAt(now) >= float64(lim.Burst()) {
			delete(r.buckets, k)
		}
	}
}

// Observe adjusts the bucket for account and op to the rate the upstream
// reported in RateLimitHeader and returns the adopted rate. Empty or
// malformed values are ignored.
func (r *RateLimiter) Observe(account, op, limitHeader string) (float64, bool) {
	if limitHeader == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(limitHeader, 64)
	if err != nil || v <= 0 {
		return 0, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.advertised[op] = rate.Limit(v)
	if lim, ok := r.buckets[bucketKey{account: account, op: op}]; ok && lim.Limit() != rate.Limit(v) {
		lim.SetLimit(rate.Limit(v))
	}
	return v, true
}

// Limit returns the rate new buckets start with when the upstream has not
// advertised one.
func (r *RateLimiter) Limit() float64 {
	return float64(r.perSecond)
}

// AdvertisedRates returns the most recent rate the upstream advertised for
// each operation.
func (r *RateLimiter) AdvertisedRates() map[string]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]float64, len(r.advertised))
	for op, l := range r.advertised {
		out[op] = float64(l)
	}
	return out
}

// DailyCount returns the number of calls made in the current window.
func (r *RateLimiter) DailyCount() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetIfExpired(r.nowFunc())
	return r.daily
}

// MaxDaily returns the configured daily budget.
func (r *RateLimiter) MaxDaily() int64 {
	return r.maxDaily
}

// Remaining returns the calls left in the current window.
func (r *RateLimiter) Remaining() int64 {
	return max(r.maxDaily-r.DailyCount(), 0)
}

// ResetAt returns when the current window expires.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}

// resetIfExpired starts a new window once the current one has passed.
// Callers hold mu.
func (r *RateLimiter) resetIfExpired(now time.Time) {
	if now.After(r.resetAt) {
		r.daily = 0
		r.windowStart = now
		r.resetAt = now.Add(24 * time.Hour)
	}
}
