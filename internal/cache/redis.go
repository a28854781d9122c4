package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores entries in Redis and lets it enforce the TTL
type Redis struct {
	client *redis.Client
	prefix string
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewRedis connects to the given redis:// URL and pings it
func NewRedis(ctx context.Context, rawURL, prefix string) (*Redis, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &Redis{client: client, prefix: prefix}, nil
}

// Get retrieves a cached value
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	r.hits.Add(1)
	return b, true, nil
}

// Set stores a value with a TTL; a non-positive TTL uses DefaultTTL
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

// Delete removes a key
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

// Stats returns hit counters; keys are not counted
func (r *Redis) Stats() Stats {
	return Stats{Backend: "redis", Hits: r.hits.Load(), Misses: r.misses.Load()}
}

// Close releases the connection pool
func (r *Redis) Close() error {
	return r.client.Close()
}
