package polymarket

import (
	"context"
	"errors"
	"testing"

	"github.com/Alias1177/OddsPredictor/models"
)

type fakeSource struct {
	markets []Market
	err     error
	calls   int
}

func (f *fakeSource) ActiveMarkets(ctx context.Context) ([]Market, error) {
	f.calls++
	return f.markets, f.err
}

func TestMatch(t *testing.T) {
	markets := []Market{
		{ID: "m1", Question: "Atlético Madrid vs. Real Betis"},
		{ID: "m2", Question: "Will Manchester United beat Chelsea?", Slug: "mu-che"},
		{ID: "m3", Question: "Arsenal vs. Manchester City"},
	}
	fixtures := []models.Fixture{
		{ID: "f1", HomeTeam: "Atletico Madrid", AwayTeam: "Real Betis"},
		{ID: "f2", HomeTeam: "Chelsea", AwayTeam: "Manchester United"},
		{ID: "f3", HomeTeam: "Arsenal", AwayTeam: "Manchester United"},
		{ID: "f4", HomeTeam: "Everton", AwayTeam: "Fulham"},
	}

	got := Match(fixtures, markets)

	tests := []struct {
		fixture string
		market  string
	}{
		{"f1", "m1"},
		{"f2", "m2"},
		{"f3", ""},
		{"f4", ""},
	}
	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			m, ok := got[tt.fixture]
			if tt.market == "" {
				if ok {
					t.Errorf("unexpected match %s", m.MarketID)
				}
				return
			}
			if !ok || m.MarketID != tt.market {
				t.Errorf("match = %+v, want %s", m, tt.market)
			}
			if m.FixtureID != tt.fixture {
				t.Errorf("fixture id = %s", m.FixtureID)
			}
		})
	}
}

func TestMatchRequiresWholeWords(t *testing.T) {
	markets := []Market{{ID: "m1", Question: "Romania vs. Interesting FC"}}
	fixtures := []models.Fixture{{ID: "f1", HomeTeam: "Roma", AwayTeam: "Inter"}}
	if got := Match(fixtures, markets); len(got) != 0 {
		t.Errorf("partial words should not match: %v", got)
	}
}

func TestLookupTradableFixtures(t *testing.T) {
	src := &fakeSource{markets: []Market{{ID: "m1", Question: "Arsenal vs Chelsea"}}}
	lookup := NewLookup(src)

	got, err := lookup.TradableFixtures(context.Background(), []models.Fixture{
		{ID: "f1", HomeTeam: "Arsenal", AwayTeam: "Chelsea"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got["f1"]; !ok {
		t.Error("expected f1 to be tradable")
	}

	if _, err := lookup.TradableFixtures(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls != 1 {
		t.Errorf("empty fixture list should not hit the source, calls = %d", src.calls)
	}

	src.err = &models.UpstreamError{Source: SourceName, Err: errors.New("down")}
	if _, err := lookup.TradableFixtures(context.Background(), []models.Fixture{{ID: "f1"}}); err == nil {
		t.Error("expected source error")
	}
}
