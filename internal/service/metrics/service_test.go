package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"callpulse/config"
	"callpulse/internal/domain"
	"callpulse/internal/service/callsapi"

	"github.com/shopspring/decimal"
)

type fakeCalls struct {
	invocations int
	res         *callsapi.FetchResult
	err         error
}

func (f *fakeCalls) FetchCalls(ctx context.Context, start, end time.Time) (*callsapi.FetchResult, error) {
	f.invocations++
	return f.res, f.err
}

func metricsConfig(ttl time.Duration) *config.Config {
	return &config.Config{
		FlatRatePerCall: decimal.RequireFromString("2.50"),
		CacheTTL:        ttl,
	}
}

func sampleRange() (time.Time, time.Time) {
	start := time.Date(2026, 8, 12, 0, 0, 1, 0, time.UTC)
	end := time.Date(2026, 8, 12, 23, 59, 59, 0, time.UTC)
	return start, end
}

func TestCallMetricsComputesSnapshot(t *testing.T) {
	fake := &fakeCalls{
		res: &callsapi.FetchResult{
			TotalCount: 2,
			Calls: []domain.CallRecord{
				{From: "+15550000001", CreatedAt: "2026-08-12T10:00:00Z", Price: 1.0, CallLength: 45.0, TransferredTo: "agent"},
				{From: "+15550000002", CreatedAt: "2026-08-12T11:00:00Z", Price: 0.5, CallLength: 5.0},
			},
		},
	}
	svc := NewService(fake, metricsConfig(10*time.Second))
	start, end := sampleRange()

	snap, err := svc.CallMetrics(context.Background(), start, end)
	if err != nil {
		t.Fatalf("CallMetrics: %v", err)
	}
	if snap.Partial {
		t.Fatal("unexpected partial flag")
	}
	if snap.Aggregate.TotalCalls != 2 || snap.Aggregate.TransferredCalls != 1 || snap.Aggregate.ConvertedCalls != 1 {
		t.Fatalf("unexpected aggregate: %+v", snap.Aggregate)
	}
	if len(snap.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(snap.Rows))
	}
}

func TestCallMetricsCachesWithinTTL(t *testing.T) {
	fake := &fakeCalls{res: &callsapi.FetchResult{TotalCount: 0}}
	svc := NewService(fake, metricsConfig(10*time.Second)).(*service)

	now := time.Date(2026, 8, 12, 12, 0, 0, 0, time.UTC)
	svc.cache.now = func() time.Time { return now }

	start, end := sampleRange()
	first, err := svc.CallMetrics(context.Background(), start, end)
	if err != nil {
		t.Fatalf("CallMetrics: %v", err)
	}
	second, err := svc.CallMetrics(context.Background(), start, end)
	if err != nil {
		t.Fatalf("CallMetrics: %v", err)
	}
	if fake.invocations != 1 {
		t.Fatalf("expected one upstream fetch within the TTL, got %d", fake.invocations)
	}
	if first != second {
		t.Fatal("expected the cached snapshot to be shared")
	}

	// Past the TTL the memo expires and the next call refetches.
	now = now.Add(11 * time.Second)
	if _, err := svc.CallMetrics(context.Background(), start, end); err != nil {
		t.Fatalf("CallMetrics: %v", err)
	}
	if fake.invocations != 2 {
		t.Fatalf("expected a refetch after expiry, got %d invocations", fake.invocations)
	}
}

func TestCallMetricsDistinctRangesDoNotShareCache(t *testing.T) {
	fake := &fakeCalls{res: &callsapi.FetchResult{TotalCount: 0}}
	svc := NewService(fake, metricsConfig(10*time.Second))

	start, end := sampleRange()
	if _, err := svc.CallMetrics(context.Background(), start, end); err != nil {
		t.Fatalf("CallMetrics: %v", err)
	}
	if _, err := svc.CallMetrics(context.Background(), start.AddDate(0, 0, -1), end); err != nil {
		t.Fatalf("CallMetrics: %v", err)
	}
	if fake.invocations != 2 {
		t.Fatalf("expected 2 upstream fetches for distinct ranges, got %d", fake.invocations)
	}
}

func TestCallMetricsPartialResultNotCached(t *testing.T) {
	fake := &fakeCalls{
		res: &callsapi.FetchResult{
			TotalCount: 100,
			Calls:      []domain.CallRecord{{Price: 1.0, CallLength: 1.0}},
			Pages:      1,
		},
		err: errors.New("calls API returned status 500"),
	}
	svc := NewService(fake, metricsConfig(10*time.Second))
	start, end := sampleRange()

	snap, err := svc.CallMetrics(context.Background(), start, end)
	if err != nil {
		t.Fatalf("partial results should not surface as a hard error: %v", err)
	}
	if !snap.Partial {
		t.Fatal("expected partial flag")
	}
	if snap.FetchErr == "" {
		t.Fatal("expected the fetch error to be surfaced")
	}
	if len(snap.Rows) != 1 {
		t.Fatalf("expected the accumulated records, got %d rows", len(snap.Rows))
	}

	if _, err := svc.CallMetrics(context.Background(), start, end); err != nil {
		t.Fatalf("CallMetrics: %v", err)
	}
	if fake.invocations != 2 {
		t.Fatalf("partial snapshots must not be cached, got %d invocations", fake.invocations)
	}
}

func TestCallMetricsTotalFailureIsAnError(t *testing.T) {
	fake := &fakeCalls{
		res: &callsapi.FetchResult{},
		err: errors.New("calls API returned status 403"),
	}
	svc := NewService(fake, metricsConfig(10*time.Second))
	start, end := sampleRange()

	if _, err := svc.CallMetrics(context.Background(), start, end); err == nil {
		t.Fatal("expected an error when no records arrived")
	}
}
