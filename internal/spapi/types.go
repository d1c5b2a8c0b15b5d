package spapi

// Money is an upstream monetary value. Amount is a decimal string.
type Money struct {
	CurrencyCode string `json:"CurrencyCode"`
	Amount       string `json:"Amount"`
}

// Order is a single order as returned by the orders endpoint. Only the
// fields this service reads are declared.
type Order struct {
	AmazonOrderID          string           `json:"AmazonOrderId"`
	PurchaseDate           string           `json:"PurchaseDate"`
	LastUpdateDate         string           `json:"LastUpdateDate,omitempty"`
	OrderStatus            string           `json:"OrderStatus"`
	OrderTotal             *Money           `json:"OrderTotal,omitempty"`
	MarketplaceID          string           `json:"MarketplaceId,omitempty"`
	FulfillmentChannel     string           `json:"FulfillmentChannel,omitempty"`
	NumberOfItemsShipped   int              `json:"NumberOfItemsShipped,omitempty"`
	NumberOfItemsUnshipped int              `json:"NumberOfItemsUnshipped,omitempty"`
	BuyerInfo              *BuyerInfo       `json:"BuyerInfo,omitempty"`
	ShippingAddress        *ShippingAddress `json:"ShippingAddress,omitempty"`
}

// BuyerInfo is only populated when the call used a restricted-data token.
type BuyerInfo struct {
	BuyerEmail string `json:"BuyerEmail,omitempty"`
	BuyerName  string `json:"BuyerName,omitempty"`
}

// ShippingAddress is only populated when the call used a restricted-data token.
type ShippingAddress struct {
	Name          string `json:"Name,omitempty"`
	City          string `json:"City,omitempty"`
	StateOrRegion string `json:"StateOrRegion,omitempty"`
	PostalCode    string `json:"PostalCode,omitempty"`
	CountryCode   string `json:"CountryCode,omitempty"`
}

// RestrictedResource names an operation a restricted-data token covers.
type RestrictedResource struct {
	Method       string   `json:"method"`
	Path         string   `json:"path"`
	DataElements []string `json:"dataElements,omitempty"`
}

// RestrictedDataToken is a short-lived token granting access to personally
// identifiable order data.
type RestrictedDataToken struct {
	Token     string `json:"restrictedDataToken"`
	ExpiresIn int    `json:"expiresIn"`
}

// Participation is one marketplace the seller participates in.
type Participation struct {
	MarketplaceID        string
	CountryCode          string
	DefaultCurrencyCode  string
	IsParticipating      bool
	HasSuspendedListings bool
}
