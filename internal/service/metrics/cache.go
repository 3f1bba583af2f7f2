package metrics

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// snapshotCache is a short-lived memo keyed by the date range, so a burst of
// dashboard refreshes inside the TTL window shares one upstream fetch. Purely
// an optimization: correctness never depends on a hit.
type snapshotCache struct {
	entries cmap.ConcurrentMap[string, cacheEntry]
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	snap    *Snapshot
	expires time.Time
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{
		entries: cmap.New[cacheEntry](),
		ttl:     ttl,
		now:     time.Now,
	}
}

func cacheKey(start, end time.Time) string {
	return start.Format(time.RFC3339) + "|" + end.Format(time.RFC3339)
}

func (c *snapshotCache) get(start, end time.Time) (*Snapshot, bool) {
	key := cacheKey(start, end)
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expires) {
		c.entries.Remove(key)
		return nil, false
	}
	return entry.snap, true
}

func (c *snapshotCache) put(start, end time.Time, snap *Snapshot) {
	if c.ttl <= 0 {
		return
	}
	c.entries.Set(cacheKey(start, end), cacheEntry{
		snap:    snap,
		expires: c.now().Add(c.ttl),
	})
}
