package calculate

import "github.com/Alias1177/OddsPredictor/models"

// Average returns the mean probabilities across all sets of one fixture.
// ok is false when there is nothing to average.
func Average(sets []models.ImpliedProbabilitySet) (avg models.AveragedProbabilitySet, ok bool) {
	if len(sets) == 0 {
		return models.AveragedProbabilitySet{}, false
	}

	home := make([]float64, len(sets))
	draw := make([]float64, len(sets))
	away := make([]float64, len(sets))
	for i, s := range sets {
		home[i] = s.Home
		draw[i] = s.Draw
		away[i] = s.Away
	}

	return models.AveragedProbabilitySet{
		FixtureID: sets[0].FixtureID,
		Home:      calculateAverage(home),
		Draw:      calculateAverage(draw),
		Away:      calculateAverage(away),
		Sources:   len(sets),
	}, true
}

// calculateAverage is the arithmetic mean; values is never empty
func calculateAverage(values []float64) float64 {
	var sum float64
	for _, value := range values {
		sum += value
	}

	return sum / float64(len(values))
}
