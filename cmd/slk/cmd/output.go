package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"
	"time"

	apiclient "github.com/donaldgifford/sellerlink/internal/api/client"
	domain "github.com/donaldgifford/sellerlink/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printConnection(w io.Writer, st *domain.ConnectionStatus) error {
	tw := newTabWriter(w)
	tw.writef("Account:\t%s\n", st.AccountID)
	tw.writef("Connected:\t%v\n", st.Connected)
	if st.SellerID != "" {
		tw.writef("Seller:\t%s\n", st.SellerID)
	}
	tw.writef("Connected At:\t%s\n", formatTime(st.ConnectedAt))
	tw.writef("Token Expires:\t%s\n", formatTime(st.TokenExpiresAt))
	tw.writef("Region:\t%s\n", st.Region)
	tw.writef("Marketplace:\t%s\n", st.MarketplaceID)
	return tw.finish()
}

func printOrders(w io.Writer, res *domain.OrderResult) error {
	tw := newTabWriter(w)
	if res.Synthetic {
		tw.writef("NOTE: %s\n\n", res.Notice)
	}
	if len(res.Orders) == 0 {
		tw.writef("No orders found.\n")
		return tw.finish()
	}
	tw.writef("ORDER ID\tDATE\tSTATUS\tAMOUNT\n")
	for i := range res.Orders {
		o := &res.Orders[i]
		tw.writef("%s\t%s\t%s\t%s\n", o.OrderID, o.OrderDate, o.Status, o.Amount)
	}
	return tw.finish()
}

func printQuota(w io.Writer, q *apiclient.Quota) error {
	tw := newTabWriter(w)
	tw.writef("Daily Limit:\t%d\n", q.DailyLimit)
	tw.writef("Used:\t%d\n", q.DailyUsed)
	tw.writef("Remaining:\t%d\n", q.Remaining)
	tw.writef("Resets At:\t%s\n", q.ResetAt.Local().Format(timeLayout))
	tw.writef("Rate:\t%.4f/s\n", q.RatePerSecond)
	for _, op := range slices.Sorted(maps.Keys(q.OperationRates)) {
		tw.writef("  %s:\t%.4f/s\n", op, q.OperationRates[op])
	}
	if q.Exhausted {
		tw.writef("Status:\texhausted, orders unavailable until reset\n")
	}
	return tw.finish()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
