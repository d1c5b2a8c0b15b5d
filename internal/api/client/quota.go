package client

import (
	"context"
	"time"
)

// Quota is the server's upstream call budget.
type Quota struct {
	DailyLimit     int64              `json:"daily_limit"`
	DailyUsed      int64              `json:"daily_used"`
	Remaining      int64              `json:"remaining"`
	ResetAt        time.Time          `json:"reset_at"`
	RatePerSecond  float64            `json:"rate_per_second"`
	OperationRates map[string]float64 `json:"operation_rates,omitempty"`
	Exhausted      bool               `json:"exhausted"`
}

// Quota returns the current upstream quota status.
func (c *Client) Quota(ctx context.Context) (*Quota, error) {
	var q Quota
	if err := c.get(ctx, "/api/v1/quota", &q); err != nil {
		return nil, err
	}
	return &q, nil
}
