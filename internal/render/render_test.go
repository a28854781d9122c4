package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alias1177/OddsPredictor/models"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.24, "24.00%"},
		{0.48275862, "48.28%"},
		{0.2400000000000002, "24.00%"},
		{0, "0.00%"},
		{1, "100.00%"},
	}
	for _, tt := range tests {
		if got := Percent(tt.in); got != tt.want {
			t.Errorf("Percent(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRecommendation(t *testing.T) {
	got := Recommendation(models.Recommendation{Outcome: models.OutcomeHome, Probability: 0.52, Delta: 0.24})
	if got != "HOME (Δ 24.00%)" {
		t.Errorf("Recommendation() = %q", got)
	}
}

func sampleReport() models.FixtureReport {
	return models.FixtureReport{
		Fixture: models.Fixture{
			ID: "f1", League: "epl", HomeTeam: "Arsenal", AwayTeam: "Chelsea",
			Kickoff: time.Date(2024, 8, 17, 14, 0, 0, 0, time.UTC),
		},
		Sources: []models.ImpliedProbabilitySet{
			{Bookmaker: "bet365", Home: 0.5, Draw: 0.3, Away: 0.2},
			{Bookmaker: "pinnacle", Home: 0.54, Draw: 0.26, Away: 0.2},
		},
		Average:        &models.AveragedProbabilitySet{Home: 0.52, Draw: 0.28, Away: 0.2, Sources: 2},
		Recommendation: &models.Recommendation{Outcome: models.OutcomeHome, Probability: 0.52, Delta: 0.24},
	}
}

func TestPrinterFixture(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, time.UTC).Fixture(sampleReport()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"EPL | Arsenal vs Chelsea | 2024-08-17 14:00 UTC",
		"Per-source probabilities:",
		"Source    Home    Draw    Away",
		"bet365    50.00%  30.00%  20.00%",
		"Aggregated summary:",
		"Home            52.00%",
		"Recommendation  HOME (Δ 24.00%)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[Polymarket]") {
		t.Error("unmatched fixture labelled as Polymarket")
	}
}

func TestPrinterPolymarketAndUnavailable(t *testing.T) {
	r := sampleReport()
	r.Sources, r.Average, r.Recommendation = nil, nil, nil
	r.OddsUnavailable = true
	r.Polymarket = &models.MarketMatch{
		FixtureID: "f1",
		Question:  "Arsenal vs. Chelsea",
		Volume:    decimal.NewNullDecimal(decimal.RequireFromString("1520.6")),
	}

	var buf bytes.Buffer
	if err := NewPrinter(&buf, nil).Fixture(r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "[Polymarket] EPL | Arsenal vs Chelsea") {
		t.Errorf("missing Polymarket label:\n%s", out)
	}
	if !strings.Contains(out, "Polymarket: Arsenal vs. Chelsea (volume 1521)") {
		t.Errorf("missing market line:\n%s", out)
	}
	if !strings.Contains(out, "Odds unavailable") || strings.Contains(out, "Aggregated summary") {
		t.Errorf("unexpected unavailable output:\n%s", out)
	}
}
