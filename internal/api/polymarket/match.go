package polymarket

import (
	"context"
	"strings"

	"github.com/Alias1177/OddsPredictor/internal/utils"
	"github.com/Alias1177/OddsPredictor/models"
)

// MarketSource lists open markets
type MarketSource interface {
	ActiveMarkets(ctx context.Context) ([]Market, error)
}

// Lookup resolves fixtures that have an open Polymarket market
type Lookup struct {
	source MarketSource
}

// NewLookup creates a Lookup over the given market source
func NewLookup(source MarketSource) *Lookup {
	return &Lookup{source: source}
}

// TradableFixtures implements models.MarketLookup
func (l *Lookup) TradableFixtures(ctx context.Context, fixtures []models.Fixture) (map[string]models.MarketMatch, error) {
	if len(fixtures) == 0 {
		return map[string]models.MarketMatch{}, nil
	}
	markets, err := l.source.ActiveMarkets(ctx)
	if err != nil {
		return nil, err
	}
	return Match(fixtures, markets), nil
}

type normalizedMarket struct {
	question string
	market   Market
}

// Match maps fixture ids to the first market whose question names both teams.
// Markets are scanned in the order given.
func Match(fixtures []models.Fixture, markets []Market) map[string]models.MarketMatch {
	normalized := make([]normalizedMarket, 0, len(markets))
	for _, m := range markets {
		q := utils.NormalizeText(m.Question)
		if q == "" {
			continue
		}
		normalized = append(normalized, normalizedMarket{question: " " + q + " ", market: m})
	}

	result := make(map[string]models.MarketMatch)
	for _, f := range fixtures {
		home := utils.NormalizeText(f.HomeTeam)
		away := utils.NormalizeText(f.AwayTeam)
		if home == "" || away == "" {
			continue
		}
		for _, nm := range normalized {
			if containsWords(nm.question, home) && containsWords(nm.question, away) {
				result[f.ID] = models.MarketMatch{
					FixtureID: f.ID,
					MarketID:  string(nm.market.ID),
					Question:  nm.market.Question,
					Slug:      nm.market.Slug,
					Volume:    nm.market.Volume,
				}
				break
			}
		}
	}
	return result
}

// containsWords matches on word boundaries; padded must start and end with a space
func containsWords(padded, phrase string) bool {
	return strings.Contains(padded, " "+phrase+" ")
}
