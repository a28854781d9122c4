package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/OddsPredictor/internal/cache"
	"github.com/Alias1177/OddsPredictor/internal/schedule"
	"github.com/Alias1177/OddsPredictor/models"
)

// Options configures an Analyzer
type Options struct {
	Source  models.OddsSource
	Markets models.MarketLookup
	Store   cache.Store
	TTL     time.Duration
	Days    int
	// Location is the reference zone for match days, UTC when nil
	Location       *time.Location
	PolymarketOnly bool
}

// Analyzer turns upstream odds into grouped fixture reports
type Analyzer struct {
	source         models.OddsSource
	markets        models.MarketLookup
	store          cache.Store
	ttl            time.Duration
	days           int
	loc            *time.Location
	polymarketOnly bool
	logger         zerolog.Logger
	now            func() time.Time
}

// LeagueResult is the outcome of one league fetch. Err is set when the odds
// source failed; MarketErr when only the Polymarket step failed.
type LeagueResult struct {
	League    models.League
	Reports   []models.FixtureReport
	Err       error
	MarketErr error
}

// New creates an Analyzer, using an in-memory store when none is given
func New(opts Options) *Analyzer {
	if opts.Store == nil {
		opts.Store = cache.NewMemory()
	}
	if opts.TTL <= 0 {
		opts.TTL = cache.DefaultTTL
	}
	if opts.Days <= 0 {
		opts.Days = 7
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	return &Analyzer{
		source:         opts.Source,
		markets:        opts.Markets,
		store:          opts.Store,
		ttl:            opts.TTL,
		days:           opts.Days,
		loc:            opts.Location,
		polymarketOnly: opts.PolymarketOnly,
		logger:         log.With().Str("component", "analyzer").Logger(),
		now:            time.Now,
	}
}

// Location returns the reference zone for match days
func (a *Analyzer) Location() *time.Location {
	return a.loc
}

// FetchLeague returns the league's fixtures, from cache when fresh
func (a *Analyzer) FetchLeague(ctx context.Context, league models.League) ([]models.Fixture, error) {
	key := cache.OddsKey(league.Key, a.days)

	var fixtures []models.Fixture
	if a.cached(ctx, key, &fixtures) {
		a.logger.Debug().Str("league", league.Key).Msg("Odds served from cache")
		return fixtures, nil
	}

	fixtures, err := a.source.FetchFixtures(ctx, league, models.NewWindow(a.now(), a.days))
	if err != nil {
		return nil, fmt.Errorf("fetching %s odds: %w", league.Key, err)
	}

	a.remember(ctx, key, fixtures)
	return fixtures, nil
}

// League fetches and analyses one league
func (a *Analyzer) League(ctx context.Context, league models.League) LeagueResult {
	result := LeagueResult{League: league}

	fixtures, err := a.FetchLeague(ctx, league)
	if err != nil {
		a.logger.Warn().Err(err).Str("league", league.Key).Msg("League unavailable")
		result.Err = err
		return result
	}

	reports := make([]models.FixtureReport, 0, len(fixtures))
	for _, f := range fixtures {
		reports = append(reports, buildReport(f, a.logger))
	}

	matches, err := a.tradable(ctx, league, fixtures)
	if err != nil {
		a.logger.Warn().Err(err).Str("league", league.Key).Msg("Polymarket lookup failed")
		result.MarketErr = err
		matches = nil
	}

	result.Reports = applyMarkets(reports, matches, a.polymarketOnly)
	return result
}

// FetchMany analyses each league independently; one failing league does not
// affect the others
func (a *Analyzer) FetchMany(ctx context.Context, leagues []models.League) []LeagueResult {
	results := make([]LeagueResult, 0, len(leagues))
	for _, l := range leagues {
		results = append(results, a.League(ctx, l))
	}
	return results
}

// Schedule returns the league's fixtures grouped by match day
func (a *Analyzer) Schedule(ctx context.Context, league models.League) (schedule.LeagueSchedule, error) {
	result := a.League(ctx, league)
	if result.Err != nil {
		return schedule.LeagueSchedule{League: league.Key}, result.Err
	}
	if a.polymarketOnly && result.MarketErr != nil {
		return schedule.LeagueSchedule{League: league.Key}, fmt.Errorf("filtering %s by Polymarket: %w", league.Key, result.MarketErr)
	}

	for _, s := range schedule.Group(result.Reports, a.loc) {
		if s.League == league.Key {
			return s, nil
		}
	}
	return schedule.LeagueSchedule{League: league.Key}, nil
}

// Report returns a single fixture's report
func (a *Analyzer) Report(ctx context.Context, league models.League, fixtureID string) (models.FixtureReport, bool, error) {
	s, err := a.Schedule(ctx, league)
	if err != nil {
		return models.FixtureReport{}, false, err
	}
	r, ok := s.Fixture(fixtureID)
	return r, ok, nil
}

func (a *Analyzer) tradable(ctx context.Context, league models.League, fixtures []models.Fixture) (map[string]models.MarketMatch, error) {
	if a.markets == nil {
		return nil, nil
	}

	key := "polymarket:" + cache.OddsKey(league.Key, a.days)
	var matches map[string]models.MarketMatch
	if a.cached(ctx, key, &matches) {
		return matches, nil
	}

	matches, err := a.markets.TradableFixtures(ctx, fixtures)
	if err != nil {
		return nil, err
	}
	a.remember(ctx, key, matches)
	return matches, nil
}

func (a *Analyzer) cached(ctx context.Context, key string, v interface{}) bool {
	data, ok, err := a.store.Get(ctx, key)
	if err != nil {
		a.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		a.logger.Warn().Err(err).Str("key", key).Msg("Discarding unreadable cache entry")
		return false
	}
	return true
}

func (a *Analyzer) remember(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		a.logger.Warn().Err(err).Str("key", key).Msg("Cannot encode cache entry")
		return
	}
	if err := a.store.Set(ctx, key, data, a.ttl); err != nil {
		a.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}
