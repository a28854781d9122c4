package analyze

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/OddsPredictor/internal/api/polymarket"
	"github.com/Alias1177/OddsPredictor/internal/api/theodds"
	"github.com/Alias1177/OddsPredictor/internal/cache"
	"github.com/Alias1177/OddsPredictor/internal/config"
)

const redisPrefix = "oddspredictor:"

// FromConfig wires the odds client, Polymarket lookup and cache store.
// The returned close function releases the store.
func FromConfig(ctx context.Context, cfg *config.Config) (*Analyzer, cache.Store, func()) {
	timeout := time.Duration(cfg.RequestTimeout) * time.Second

	odds := theodds.NewClient(theodds.ClientOptions{
		APIKey:         cfg.OddsAPIKey,
		BaseURL:        cfg.OddsBaseURL,
		Regions:        cfg.Regions,
		Bookmakers:     cfg.Bookmakers,
		RequestTimeout: timeout,
		RequestsPerSec: cfg.RequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
	})

	markets := polymarket.NewLookup(polymarket.NewClient(polymarket.ClientOptions{
		Endpoint:       cfg.PolymarketEndpoint,
		Limit:          cfg.PolymarketLimit,
		RequestTimeout: timeout,
		RequestsPerSec: cfg.RequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
	}))

	store, closeStore := newStore(ctx, cfg.RedisURL)

	a := New(Options{
		Source:         odds,
		Markets:        markets,
		Store:          store,
		TTL:            cfg.CacheTTL,
		Days:           cfg.DaysAhead,
		Location:       cfg.Location(),
		PolymarketOnly: cfg.PolymarketOnly,
	})
	return a, store, closeStore
}

func newStore(ctx context.Context, redisURL string) (cache.Store, func()) {
	if redisURL == "" {
		return cache.NewMemory(), func() {}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	r, err := cache.NewRedis(pingCtx, redisURL, redisPrefix)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-memory cache")
		return cache.NewMemory(), func() {}
	}
	log.Info().Msg("Using Redis cache")
	return r, func() { r.Close() }
}
