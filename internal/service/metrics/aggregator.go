package metrics

import (
	"log"
	"strings"

	"callpulse/internal/domain"

	"github.com/shopspring/decimal"
)

// convertedThresholdMinutes is the duration above which a call counts as
// converted. Strictly exclusive: exactly 30 minutes is not converted.
const convertedThresholdMinutes = 30

// Aggregate folds once over the fetched records and computes the summary
// statistics. totalCount is the server-reported count for the full range and
// is taken as-is; it is never recomputed from len(records), because the two
// legitimately differ when the backend caps page iteration.
//
// A record with a malformed price or duration stays in the totals it can
// still contribute to; only the bad field is excluded, and the skip is
// counted on the result so it stays observable.
func Aggregate(records []domain.CallRecord, totalCount int, flatRatePerCall decimal.Decimal) domain.AggregateResult {
	agg := domain.AggregateResult{
		TotalCalls: totalCount,
		TotalCost:  decimal.Zero,
	}

	for _, r := range records {
		if price, ok := domain.DecimalValue(r.Price); ok {
			agg.TotalCost = agg.TotalCost.Add(price)
		} else {
			agg.InvalidPrices++
			log.Printf("skipping unparseable price %v for call %v", r.Price, domain.StringValue(r.CallID))
		}

		if r.Transferred() {
			agg.TransferredCalls++
		}

		if minutes, ok := domain.NumberValue(r.CallLength); ok {
			if minutes > convertedThresholdMinutes {
				agg.ConvertedCalls++
			}
		} else {
			agg.InvalidDurations++
			log.Printf("skipping unparseable duration %v for call %v", r.CallLength, domain.StringValue(r.CallID))
		}
	}

	// Division-by-zero is policy-defined as zero, not an error.
	if agg.TotalCalls > 0 {
		agg.TransferredPct = float64(agg.TransferredCalls) / float64(agg.TotalCalls) * 100
	}
	if agg.TransferredCalls > 0 {
		agg.ConvertedPct = float64(agg.ConvertedCalls) / float64(agg.TransferredCalls) * 100
	}

	agg.CallProfit = decimal.NewFromInt(int64(agg.TotalCalls)).
		Mul(flatRatePerCall).
		Sub(agg.TotalCost)

	return agg
}

// Project maps each record to its table row. Rows are kept even when a
// numeric field is malformed; the bad field just renders as zero.
func Project(records []domain.CallRecord) []domain.DetailRow {
	rows := make([]domain.DetailRow, 0, len(records))
	for _, r := range records {
		cost, _ := domain.DecimalValue(r.Price)
		minutes, _ := domain.NumberValue(r.CallLength)

		rows = append(rows, domain.DetailRow{
			InboundNumber: domain.StringValue(r.From),
			CallDate:      strings.SplitN(domain.StringValue(r.CreatedAt), "T", 2)[0],
			Duration:      minutes,
			Cost:          cost,
			Transferred:   r.Transferred(),
			RecordingURL:  domain.StringValue(r.RecordingURL),
		})
	}
	return rows
}
