package calculate

import (
	"math"

	"github.com/Alias1177/OddsPredictor/models"
)

// Convert turns a bookmaker quote into margin-free implied probabilities.
// The three returned probabilities always sum to 1.
func Convert(q models.BookmakerQuote) (models.ImpliedProbabilitySet, error) {
	odds := []struct {
		field string
		value float64
	}{
		{"home", q.Home},
		{"draw", q.Draw},
		{"away", q.Away},
	}

	raw := make([]float64, len(odds))
	var sum float64
	for i, o := range odds {
		if err := validateOdds(q, o.field, o.value); err != nil {
			return models.ImpliedProbabilitySet{}, err
		}
		raw[i] = ImpliedProbability(o.value)
		if math.IsInf(raw[i], 0) {
			return models.ImpliedProbabilitySet{}, &models.ValidationError{FixtureID: q.FixtureID, Bookmaker: q.Bookmaker, Field: o.field, Reason: "is not a finite number"}
		}
		sum += raw[i]
	}
	if math.IsInf(sum, 0) {
		return models.ImpliedProbabilitySet{}, &models.ValidationError{FixtureID: q.FixtureID, Bookmaker: q.Bookmaker, Field: "odds", Reason: "is not a finite number"}
	}

	return models.ImpliedProbabilitySet{
		FixtureID:  q.FixtureID,
		Bookmaker:  q.Bookmaker,
		Home:       raw[0] / sum,
		Draw:       raw[1] / sum,
		Away:       raw[2] / sum,
		RawSum:     sum,
		Margin:     sum - 1.0,
		LastUpdate: q.LastUpdate,
	}, nil
}

// ConvertAll converts every quote of a fixture. Invalid quotes are skipped
// and reported in the second return value.
func ConvertAll(quotes []models.BookmakerQuote) ([]models.ImpliedProbabilitySet, []error) {
	sets := make([]models.ImpliedProbabilitySet, 0, len(quotes))
	var errs []error
	for _, q := range quotes {
		set, err := Convert(q)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sets = append(sets, set)
	}
	return sets, errs
}

// ImpliedProbability is 1/odds, or 0 for unusable odds
func ImpliedProbability(odds float64) float64 {
	if odds <= 0 || math.IsNaN(odds) || math.IsInf(odds, 0) {
		return 0
	}
	return 1.0 / odds
}

func validateOdds(q models.BookmakerQuote, field string, value float64) error {
	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		return &models.ValidationError{FixtureID: q.FixtureID, Bookmaker: q.Bookmaker, Field: field, Reason: "is not a finite number"}
	case value <= 0:
		return &models.ValidationError{FixtureID: q.FixtureID, Bookmaker: q.Bookmaker, Field: field, Reason: "must be positive"}
	}
	return nil
}
