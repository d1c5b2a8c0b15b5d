package spapi

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

const (
	minSyntheticOrders = 5
	maxSyntheticOrders = 15

	// SyntheticNotice labels every synthetic result.
	SyntheticNotice = "demo data: the connected account is not authorized for the orders API; " +
		"these orders are generated and do not reflect real sales"
)

// syntheticStatuses are the statuses a generated order can carry.
var syntheticStatuses = []domain.OrderStatus{
	domain.OrderShipped,
	domain.OrderPending,
	domain.OrderDelivered,
	domain.OrderCancelled,
}

// SyntheticGenerator produces clearly labeled demo orders.
type SyntheticGenerator struct {
	mu      sync.Mutex
	rnd     *rand.Rand
	nowFunc func() time.Time
}

// SyntheticOption configures the SyntheticGenerator.
type SyntheticOption func(*SyntheticGenerator)

// WithSyntheticSeed makes generation deterministic.
func WithSyntheticSeed(seed uint64) SyntheticOption {
	return func(g *SyntheticGenerator) {
		g.rnd = rand.New(rand.NewPCG(seed, seed^0x5eed))
	}
}

// WithSyntheticNowFunc overrides the time function for testing.
func WithSyntheticNowFunc(f func() time.Time) SyntheticOption {
	return func(g *SyntheticGenerator) {
		g.nowFunc = f
	}
}

// NewSyntheticGenerator creates a SyntheticGenerator.
func NewSyntheticGenerator(opts ...SyntheticOption) *SyntheticGenerator {
	g := &SyntheticGenerator{
		rnd:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // demo data
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns between 5 and 15 orders dated within the last windowDays
// days, sorted by date descending.
func (g *SyntheticGenerator) Generate(windowDays int, currency string) []domain.OrderRecord {
	if windowDays < 1 {
		windowDays = 1
	}
	if currency == "" {
		currency = "USD"
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.nowFunc().UTC()
	n := minSyntheticOrders + g.rnd.IntN(maxSyntheticOrders-minSyntheticOrders+1)

	records := make([]domain.OrderRecord, 0, n)
	for range n {
		date := now.AddDate(0, 0, -g.rnd.IntN(windowDays))
		cents := 500 + g.rnd.Int64N(500_000)
		records = append(records, domain.OrderRecord{
			OrderID:   g.orderID(),
			OrderDate: date.Format(domain.OrderDateLayout),
			Status:    syntheticStatuses[g.rnd.IntN(len(syntheticStatuses))],
			Amount:    currency + " " + decimal.New(cents, -2).StringFixed(2),
		})
	}

	slices.SortStableFunc(records, func(a, b domain.OrderRecord) int {
		return strings.Compare(b.OrderDate, a.OrderDate)
	})
	return records
}

// orderID mimics the upstream 3-7-7 layout with a DEMO prefix so generated
// ids can never collide with real ones.
func (g *SyntheticGenerator) orderID() string {
	return fmt.Sprintf("DEMO-%07d-%07d", g.rnd.IntN(10_000_000), g.rnd.IntN(10_000_000))
}
