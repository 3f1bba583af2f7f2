package metrics

import (
	"context"
	"log"
	"time"

	"callpulse/config"
	"callpulse/internal/domain"
	"callpulse/internal/service/callsapi"

	"github.com/shopspring/decimal"
)

// Snapshot is one computed fetch+aggregate result for a date range.
type Snapshot struct {
	Aggregate domain.AggregateResult
	Rows      []domain.DetailRow
	// Partial is true when the page loop aborted on a transport error and
	// the snapshot covers only the pages fetched before the failure.
	Partial  bool
	FetchErr string
}

// Service computes call metrics for a date range. Stateless between calls
// apart from the expiring snapshot memo.
type Service interface {
	CallMetrics(ctx context.Context, start, end time.Time) (*Snapshot, error)
}

type service struct {
	calls    callsapi.Client
	cache    *snapshotCache
	flatRate decimal.Decimal
}

// NewService creates the metrics service.
func NewService(calls callsapi.Client, cfg *config.Config) Service {
	return &service{
		calls:    calls,
		cache:    newSnapshotCache(cfg.CacheTTL),
		flatRate: cfg.FlatRatePerCall,
	}
}

// CallMetrics fetches every call in [start, end], folds the aggregate and
// projects the detail rows. A transport failure mid-fetch still yields the
// pages already accumulated, marked Partial; a failure before any records
// arrived is an error.
func (s *service) CallMetrics(ctx context.Context, start, end time.Time) (*Snapshot, error) {
	if snap, ok := s.cache.get(start, end); ok {
		return snap, nil
	}

	res, err := s.calls.FetchCalls(ctx, start, end)
	if err != nil && (res == nil || len(res.Calls) == 0) {
		return nil, err
	}

	snap := &Snapshot{
		Aggregate: Aggregate(res.Calls, res.TotalCount, s.flatRate),
		Rows:      Project(res.Calls),
	}

	if err != nil {
		log.Printf("call fetch aborted after %d pages, serving partial result: %v", res.Pages, err)
		snap.Partial = true
		snap.FetchErr = err.Error()
		// Partial snapshots are never cached.
		return snap, nil
	}

	s.cache.put(start, end, snap)
	return snap, nil
}
