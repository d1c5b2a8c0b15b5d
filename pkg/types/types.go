// Package domain defines the core business types for sellerlink.
package domain

import (
	"slices"
	"time"
)

// OrderStatus is the normalized status of an order.
type OrderStatus string

// Order status constants.
const (
	OrderShipped   OrderStatus = "Shipped"
	OrderPending   OrderStatus = "Pending"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
	OrderUnknown   OrderStatus = "Unknown"
)

// OrderStatuses is the fixed set of statuses an OrderRecord can carry.
var OrderStatuses = []OrderStatus{
	OrderShipped,
	OrderPending,
	OrderDelivered,
	OrderCancelled,
	OrderUnknown,
}

// Valid reports whether s is one of the fixed order statuses.
func (s OrderStatus) Valid() bool {
	return slices.Contains(OrderStatuses, s)
}

// AmountNotAvailable marks an order whose upstream total was missing. It is
// distinct from a zero amount.
const AmountNotAvailable = "N/A"

// OrderDateLayout is the calendar-day layout of OrderRecord.OrderDate.
const OrderDateLayout = "2006-01-02"

// OrderRecord is the public, transient shape of a single order.
type OrderRecord struct {
	OrderID   string      `json:"order_id"`
	OrderDate string      `json:"order_date" example:"2025-06-15"`
	Status    OrderStatus `json:"status"     example:"Shipped"`
	Amount    string      `json:"amount"     example:"INR 450.00"`
}

// OrderResult is the outcome of a single order retrieval. Synthetic results
// are generated demo data and carry a Notice explaining why.
type OrderResult struct {
	Orders    []OrderRecord `json:"orders"`
	Synthetic bool          `json:"synthetic"`
	Notice    string        `json:"notice,omitempty"`
}

// Credential is the stored external-account credential for one local account.
// Tokens never leave the process in JSON form.
type Credential struct {
	AccountID      string     `json:"account_id"             db:"account_id"`
	AccessToken    string     `json:"-"                      db:"access_token"`
	RefreshToken   string     `json:"-"                      db:"refresh_token"`
	TokenExpiresAt time.Time  `json:"token_expires_at"       db:"token_expires_at"`
	SellerID       string     `json:"seller_id,omitempty"    db:"seller_id"`
	ConnectedAt    *time.Time `json:"connected_at,omitempty" db:"connected_at"`
	UpdatedAt      time.Time  `json:"updated_at"             db:"updated_at"`
}

// Expired reports whether the access token must not be presented at now,
// given a safety buffer before the absolute expiry.
func (c *Credential) Expired(now time.Time, buffer time.Duration) bool {
	return !now.Before(c.TokenExpiresAt.Add(-buffer))
}

// ConnectionStatus describes an account's link to the external marketplace
// without exposing any token material.
type ConnectionStatus struct {
	AccountID      string     `json:"account_id"`
	Connected      bool       `json:"connected"`
	SellerID       string     `json:"seller_id,omitempty"`
	ConnectedAt    *time.Time `json:"connected_at,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
	Region         string     `json:"region"`
	MarketplaceID  string     `json:"marketplace_id"`
}
