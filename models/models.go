package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outcome is one leg of the match-winner market
type Outcome string

const (
	OutcomeHome Outcome = "home"
	OutcomeDraw Outcome = "draw"
	OutcomeAway Outcome = "away"
)

// OutcomePriority is the fixed order used to break ties between outcomes
var OutcomePriority = []Outcome{OutcomeHome, OutcomeDraw, OutcomeAway}

// League describes a supported competition
type League struct {
	Key      string `yaml:"key" json:"key"`
	Name     string `yaml:"name" json:"name"`
	SportKey string `yaml:"sport_key" json:"sport_key"`
	Command  string `yaml:"command" json:"command"`
}

// Window bounds the kick-off times requested from the odds source
type Window struct {
	From time.Time
	To   time.Time
	Days int
}

// BookmakerQuote holds the decimal odds of a single bookmaker for a fixture.
// A missing outcome is carried as 0.
type BookmakerQuote struct {
	Bookmaker  string    `json:"bookmaker"`
	FixtureID  string    `json:"fixture_id"`
	Home       float64   `json:"home"`
	Draw       float64   `json:"draw"`
	Away       float64   `json:"away"`
	LastUpdate time.Time `json:"last_update,omitempty"`
}

// ImpliedProbabilitySet is a bookmaker quote converted to margin-free probabilities
type ImpliedProbabilitySet struct {
	FixtureID  string    `json:"fixture_id"`
	Bookmaker  string    `json:"bookmaker"`
	Home       float64   `json:"home"`
	Draw       float64   `json:"draw"`
	Away       float64   `json:"away"`
	RawSum     float64   `json:"raw_sum"`
	Margin     float64   `json:"margin"`
	LastUpdate time.Time `json:"last_update,omitempty"`
}

// Suspicious reports a quote whose raw probabilities carry no overround
func (s ImpliedProbabilitySet) Suspicious() bool {
	return s.RawSum <= 1.0
}

// Probability returns the probability of the given outcome
func (s ImpliedProbabilitySet) Probability(o Outcome) float64 {
	return pick(o, s.Home, s.Draw, s.Away)
}

// AveragedProbabilitySet is the mean of all valid bookmaker sets for a fixture
type AveragedProbabilitySet struct {
	FixtureID string  `json:"fixture_id"`
	Home      float64 `json:"home"`
	Draw      float64 `json:"draw"`
	Away      float64 `json:"away"`
	Sources   int     `json:"sources"`
}

// Probability returns the averaged probability of the given outcome
func (s AveragedProbabilitySet) Probability(o Outcome) float64 {
	return pick(o, s.Home, s.Draw, s.Away)
}

// Recommendation is the strongest outcome of a fixture
type Recommendation struct {
	FixtureID   string  `json:"fixture_id"`
	Outcome     Outcome `json:"outcome"`
	Probability float64 `json:"probability"`
	Delta       float64 `json:"delta"`
}

// Fixture is a single upcoming match with its raw bookmaker quotes
type Fixture struct {
	ID       string           `json:"id"`
	League   string           `json:"league"`
	HomeTeam string           `json:"home_team"`
	AwayTeam string           `json:"away_team"`
	Kickoff  time.Time        `json:"kickoff"`
	Quotes   []BookmakerQuote `json:"quotes"`
}

// MarketMatch links a fixture to a tradable Polymarket market
type MarketMatch struct {
	FixtureID string              `json:"fixture_id"`
	MarketID  string              `json:"market_id"`
	Question  string              `json:"question"`
	Slug      string              `json:"slug"`
	Volume    decimal.NullDecimal `json:"volume"`
}

// FixtureReport is everything the presentation layer needs for one fixture
type FixtureReport struct {
	Fixture         Fixture                 `json:"fixture"`
	Sources         []ImpliedProbabilitySet `json:"sources"`
	Average         *AveragedProbabilitySet `json:"average,omitempty"`
	Recommendation  *Recommendation         `json:"recommendation,omitempty"`
	OddsUnavailable bool                    `json:"odds_unavailable"`
	DroppedQuotes   int                     `json:"dropped_quotes"`
	Polymarket      *MarketMatch            `json:"polymarket,omitempty"`
}

// Caller identifies who is asking to see a fixture
type Caller struct {
	ID     int64
	Source string
}

func pick(o Outcome, home, draw, away float64) float64 {
	switch o {
	case OutcomeHome:
		return home
	case OutcomeDraw:
		return draw
	case OutcomeAway:
		return away
	}
	return 0
}
