package calculate

import (
	"errors"
	"math"
	"testing"

	"github.com/Alias1177/OddsPredictor/models"
)

func TestAverage(t *testing.T) {
	t.Run("Two bookmakers", func(t *testing.T) {
		sets := []models.ImpliedProbabilitySet{
			{FixtureID: "f1", Bookmaker: "a", Home: 0.50, Draw: 0.30, Away: 0.20},
			{FixtureID: "f1", Bookmaker: "b", Home: 0.54, Draw: 0.26, Away: 0.20},
		}
		avg, ok := Average(sets)
		if !ok {
			t.Fatal("expected an average")
		}
		if math.Abs(avg.Home-0.52) > 1e-9 {
			t.Errorf("home = %f, want 0.52", avg.Home)
		}
		if avg.Sources != 2 {
			t.Errorf("sources = %d, want 2", avg.Sources)
		}
		if sum := avg.Home + avg.Draw + avg.Away; math.Abs(sum-1) > 1e-9 {
			t.Errorf("average sums to %f", sum)
		}
	})

	t.Run("Single bookmaker is returned as is", func(t *testing.T) {
		set, err := Convert(models.BookmakerQuote{FixtureID: "f2", Bookmaker: "a", Home: 2.2, Draw: 3.1, Away: 3.6})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		avg, ok := Average([]models.ImpliedProbabilitySet{set})
		if !ok {
			t.Fatal("expected an average")
		}
		if avg.Home != set.Home || avg.Draw != set.Draw || avg.Away != set.Away {
			t.Errorf("average %+v differs from the only set %+v", avg, set)
		}
		if avg.Sources != 1 || avg.FixtureID != "f2" {
			t.Errorf("unexpected metadata: %+v", avg)
		}
	})

	t.Run("No bookmakers", func(t *testing.T) {
		if _, ok := Average(nil); ok {
			t.Error("expected no average for empty input")
		}
	})
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name      string
		avg       models.AveragedProbabilitySet
		want      models.Outcome
		wantDelta float64
	}{
		{
			name:      "Clear home favourite",
			avg:       models.AveragedProbabilitySet{Home: 0.52, Draw: 0.28, Away: 0.20, Sources: 3},
			want:      models.OutcomeHome,
			wantDelta: 0.24,
		},
		{
			name:      "Away favourite",
			avg:       models.AveragedProbabilitySet{Home: 0.25, Draw: 0.27, Away: 0.48, Sources: 1},
			want:      models.OutcomeAway,
			wantDelta: 0.21,
		},
		{
			name:      "Home and draw tied",
			avg:       models.AveragedProbabilitySet{Home: 0.4, Draw: 0.4, Away: 0.2, Sources: 2},
			want:      models.OutcomeHome,
			wantDelta: 0,
		},
		{
			name:      "Draw and away tied",
			avg:       models.AveragedProbabilitySet{Home: 0.2, Draw: 0.4, Away: 0.4, Sources: 2},
			want:      models.OutcomeDraw,
			wantDelta: 0,
		},
		{
			name:      "Home and away tied",
			avg:       models.AveragedProbabilitySet{Home: 0.4, Draw: 0.2, Away: 0.4, Sources: 2},
			want:      models.OutcomeHome,
			wantDelta: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Recommend(tt.avg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Outcome != tt.want {
				t.Errorf("outcome = %s, want %s", rec.Outcome, tt.want)
			}
			if math.Abs(rec.Delta-tt.wantDelta) > 1e-9 {
				t.Errorf("delta = %f, want %f", rec.Delta, tt.wantDelta)
			}
			if rec.Delta < 0 {
				t.Errorf("delta must not be negative: %f", rec.Delta)
			}
			if rec.Probability != tt.avg.Probability(tt.want) {
				t.Errorf("probability = %f, want %f", rec.Probability, tt.avg.Probability(tt.want))
			}
		})
	}
}

func TestRecommendRequiresSources(t *testing.T) {
	_, err := Recommend(models.AveragedProbabilitySet{})
	if !errors.Is(err, ErrNoSources) {
		t.Errorf("expected ErrNoSources, got %v", err)
	}
}
