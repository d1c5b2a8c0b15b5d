package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/sellerlink/internal/spapi"
)

// QuotaHandler provides the upstream API quota status endpoint.
type QuotaHandler struct {
	rl *spapi.RateLimiter
}

// NewQuotaHandler creates a new QuotaHandler.
func NewQuotaHandler(rl *spapi.RateLimiter) *QuotaHandler {
	return &QuotaHandler{rl: rl}
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		DailyLimit     int64              `json:"daily_limit"               example:"5000"                 doc:"Configured daily API call limit"`
		DailyUsed      int64              `json:"daily_used"                example:"142"                  doc:"API calls used in the current 24-hour window"`
		Remaining      int64              `json:"remaining"                 example:"4858"                 doc:"API calls remaining in the current window"`
		ResetAt        time.Time          `json:"reset_at"                  example:"2025-06-16T14:30:00Z" doc:"When the current 24-hour window expires"`
		RatePerSecond  float64            `json:"rate_per_second"           example:"0.0167"               doc:"Per-account rate used until the upstream advertises one"`
		OperationRates map[string]float64 `json:"operation_rates,omitempty"                                doc:"Per-account rate last advertised upstream, by operation"`
		Exhausted      bool               `json:"exhausted"                 example:"false"                doc:"Order retrieval is refused locally until reset_at"`
	}
}

// GetQuota returns the current upstream API quota status.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	if h.rl == nil {
		return resp, nil
	}

	resp.Body.DailyLimit = h.rl.MaxDaily()
	resp.Body.DailyUsed = h.rl.DailyCount()
	resp.Body.Remaining = h.rl.Remaining()
	resp.Body.ResetAt = h.rl.ResetAt()
	resp.Body.RatePerSecond = h.rl.Limit()
	if rates := h.rl.AdvertisedRates(); len(rates) > 0 {
		resp.Body.OperationRates = rates
	}
	resp.Body.Exhausted = resp.Body.Remaining == 0

	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get marketplace API quota status",
		Description: "Returns the current daily API call usage, remaining quota, window reset time and request rate.",
		Tags:        []string{"marketplace"},
	}, h.GetQuota)
}
