package models

import "context"

// OddsSource fetches fixtures with match-winner quotes for a league
type OddsSource interface {
	FetchFixtures(ctx context.Context, league League, window Window) ([]Fixture, error)
}

// MarketLookup resolves which fixtures are currently tradable on Polymarket
type MarketLookup interface {
	TradableFixtures(ctx context.Context, fixtures []Fixture) (map[string]MarketMatch, error)
}

// EligibilityChecker decides whether a caller may see a fixture
type EligibilityChecker interface {
	Eligible(ctx context.Context, caller Caller, fixtureID string) (bool, error)
}
