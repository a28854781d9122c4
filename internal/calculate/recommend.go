package calculate

import (
	"errors"

	"github.com/Alias1177/OddsPredictor/models"
)

// ErrNoSources is returned when a recommendation is asked for an empty average
var ErrNoSources = errors.New("averaged probabilities have no contributing sources")

// Recommend picks the outcome with the highest averaged probability.
// Ties go to the earlier outcome in models.OutcomePriority.
func Recommend(avg models.AveragedProbabilitySet) (models.Recommendation, error) {
	if avg.Sources < 1 {
		return models.Recommendation{}, ErrNoSources
	}

	best := models.OutcomePriority[0]
	top := avg.Probability(best)
	for _, o := range models.OutcomePriority[1:] {
		if p := avg.Probability(o); p > top {
			best, top = o, p
		}
	}

	second := -1.0
	for _, o := range models.OutcomePriority {
		if o == best {
			continue
		}
		if p := avg.Probability(o); p > second {
			second = p
		}
	}

	delta := top - second
	if delta < 0 {
		delta = 0
	}

	return models.Recommendation{
		FixtureID:   avg.FixtureID,
		Outcome:     best,
		Probability: top,
		Delta:       delta,
	}, nil
}
