// Package cache keeps recently fetched odds so repeated menu navigation
// does not spend upstream quota.
package cache

import (
	"context"
	"fmt"
	"time"
)

// DefaultTTL is used when no TTL is configured
const DefaultTTL = 5 * time.Minute

// Store is a byte-oriented TTL cache
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Stats is a snapshot of cache counters
type Stats struct {
	Backend string `json:"backend"`
	Keys    int    `json:"keys"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// StatsReporter is implemented by stores that keep counters
type StatsReporter interface {
	Stats() Stats
}

// OddsKey is the cache key for one league and window length
func OddsKey(league string, days int) string {
	return fmt.Sprintf("odds:%s:%dd", league, days)
}
