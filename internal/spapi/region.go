package spapi

import (
	"fmt"
	"maps"
)

// Region is an upstream API region code.
type Region string

// Supported regions.
const (
	RegionNA Region = "na"
	RegionEU Region = "eu"
	RegionFE Region = "fe"
)

var regionEndpoints = map[Region]string{
	RegionNA: "https://sellingpartnerapi-na.amazon.com",
	RegionEU: "https://sellingpartnerapi-eu.amazon.com",
	RegionFE: "https://sellingpartnerapi-fe.amazon.com",
}

var sandboxEndpoints = map[Region]string{
	RegionNA: "https://sandbox.sellingpartnerapi-na.amazon.com",
	RegionEU: "https://sandbox.sellingpartnerapi-eu.amazon.com",
	RegionFE: "https://sandbox.sellingpartnerapi-fe.amazon.com",
}

// defaultMarketplaces holds the per-region marketplace used when no override
// is configured. The eu entry is the India marketplace: this deployment
// serves Indian sellers through the EU endpoint.
var defaultMarketplaces = map[Region]string{
	RegionNA: "ATVPDKIKX0DER",  // United States
	RegionEU: "A21TJRUUN4KGV",  // India
	RegionFE: "A1VC38T7YXB528", // Japan
}

var marketplaceCurrencies = map[string]string{
	"ATVPDKIKX0DER":  "USD",
	"A2EUQ1WTGCTBG2": "CAD",
	"A1AM78C64UM0Y8": "MXN",
	"A21TJRUUN4KGV":  "INR",
	"A1F83G8C2ARO7P": "GBP",
	"A1PA6795UKMFR9": "EUR",
	"A13V1IB3VIYZZH": "EUR",
	"APJ6JRA9NG5V4":  "EUR",
	"A1RKKUPIHCS9HS": "EUR",
	"A1VC38T7YXB528": "JPY",
	"A39IBJ37TRP1C6": "AUD",
	"A19VAU5U5O7RUS": "SGD",
}

// Resolver maps region codes onto data endpoints and marketplace ids.
type Resolver struct {
	marketplaces map[Region]string
}

// NewResolver creates a Resolver. overrides replaces the default marketplace
// for the regions it names.
func NewResolver(overrides map[string]string) *Resolver {
	r := &Resolver{marketplaces: maps.Clone(defaultMarketplaces)}
	for region, id := range overrides {
		r.marketplaces[Region(region)] = id
	}
	return r
}

// ResolveBaseURL returns the data endpoint for region.
func (*Resolver) ResolveBaseURL(region string, sandbox bool) (string, error) {
	endpoints := regionEndpoints
	if sandbox {
		endpoints = sandboxEndpoints
	}
	u, ok := endpoints[Region(region)]
	if !ok {
		return "", fmt.Errorf("%w: unknown region %q", ErrConfiguration, region)
	}
	return u, nil
}

// ResolveMarketplaceID returns the marketplace used for region.
func (r *Resolver) ResolveMarketplaceID(region string) (string, error) {
	if _, ok := regionEndpoints[Region(region)]; !ok {
		return "", fmt.Errorf("%w: unknown region %q", ErrConfiguration, region)
	}
	id, ok := r.marketplaces[Region(region)]
	if !ok || id == "" {
		return "", fmt.Errorf("%w: no marketplace configured for region %q", ErrConfiguration, region)
	}
	return id, nil
}

// CurrencyFor returns the default currency of a marketplace, or USD when the
// marketplace is unknown.
func CurrencyFor(marketplaceID string) string {
	if c, ok := marketplaceCurrencies[marketplaceID]; ok {
		return c
	}
	return "USD"
}
