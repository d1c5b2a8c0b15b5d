package spapi

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

// ToOrderRecords converts upstream orders into public order records,
// preserving order.
func ToOrderRecords(orders []Order) []domain.OrderRecord {
	records := make([]domain.OrderRecord, 0, len(orders))
	for i := range orders {
		records = append(records, toOrderRecord(&orders[i]))
	}
	return records
}

func toOrderRecord(o *Order) domain.OrderRecord {
	return domain.OrderRecord{
		OrderID:   o.AmazonOrderID,
		OrderDate: formatOrderDate(o.PurchaseDate),
		Status:    MapOrderStatus(o.OrderStatus),
		Amount:    FormatAmount(o.OrderTotal),
	}
}

// MapOrderStatus normalizes an upstream status onto the fixed status set.
func MapOrderStatus(s string) domain.OrderStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shipped", "partiallyshipped":
		return domain.OrderShipped
	case "pending", "unshipped", "pendingavailability":
		return domain.OrderPending
	case "delivered":
		return domain.OrderDelivered
	case "canceled", "cancelled":
		return domain.OrderCancelled
	default:
		return domain.OrderUnknown
	}
}

// FormatAmount renders a total as "<currency> <amount>" with two decimals.
// A missing total renders as domain.AmountNotAvailable, never as zero.
func FormatAmount(m *Money) string {
	if m == nil || strings.TrimSpace(m.Amount) == "" {
		return domain.AmountNotAvailable
	}

	amount := strings.TrimSpace(m.Amount)
	if d, err := decimal.NewFromString(amount); err == nil {
		amount = d.StringFixed(2)
	}

	if m.CurrencyCode == "" {
		return amount
	}
	return m.CurrencyCode + " " + amount
}

// formatOrderDate truncates an RFC 3339 purchase timestamp to its UTC
// calendar date.
func formatOrderDate(purchaseDate string) string {
	if t, err := time.Parse(time.RFC3339, purchaseDate); err == nil {
		return t.UTC().Format(domain.OrderDateLayout)
	}
	if len(purchaseDate) >= len(domain.OrderDateLayout) {
		return purchaseDate[:len(domain.OrderDateLayout)]
	}
	return purchaseDate
}
