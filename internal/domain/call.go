package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CallRecord is a single call as returned by the telephony API. The API
// guarantees no fixed schema: any field may be absent, null, or carry an
// unexpected type, so everything is decoded loosely and coerced on access.
type CallRecord struct {
	CallID        any            `json:"call_id"`
	From          any            `json:"from"`
	CreatedAt     any            `json:"created_at"`
	CallLength    any            `json:"call_length"`
	Price         any            `json:"price"`
	TransferredTo any            `json:"transferred_to"`
	RecordingURL  any            `json:"recording_url"`
	Variables     map[string]any `json:"variables"`
}

// Transferred reports whether the call was handed off to a transfer target.
// Presence check only: any non-null value counts, including an empty string.
func (r CallRecord) Transferred() bool {
	return r.TransferredTo != nil
}

// AggregateResult holds the summary statistics for one date range. TotalCalls
// is the server-reported count and may exceed the number of individually
// fetched records when the backend caps page iteration.
type AggregateResult struct {
	TotalCalls       int             `json:"total_calls"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	TransferredCalls int             `json:"transferred_calls"`
	ConvertedCalls   int             `json:"converted_calls"`
	TransferredPct   float64         `json:"transferred_pct"`
	ConvertedPct     float64         `json:"converted_pct"`
	CallProfit       decimal.Decimal `json:"call_profit"`
	InvalidPrices    int             `json:"invalid_prices"`
	InvalidDurations int             `json:"invalid_durations"`
}

// DetailRow is the per-call projection rendered in the dashboard table.
type DetailRow struct {
	InboundNumber string          `json:"inbound_number"`
	CallDate      string          `json:"call_date"`
	Duration      float64         `json:"duration_minutes"`
	Cost          decimal.Decimal `json:"cost"`
	Transferred   bool            `json:"transferred"`
	RecordingURL  string          `json:"recording_url,omitempty"`
}

// StringValue coerces a loosely-typed API field to a string.
func StringValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

// NumberValue coerces a loosely-typed API field to a float64. The second
// return is false when the value is absent or not numeric.
func NumberValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// DecimalValue coerces a loosely-typed API field to a decimal, used for
// money so per-call prices sum without float drift.
func DecimalValue(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}
