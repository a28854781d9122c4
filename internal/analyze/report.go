package analyze

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/Alias1177/OddsPredictor/internal/calculate"
	"github.com/Alias1177/OddsPredictor/models"
)

// BuildReport converts, averages and recommends for a single fixture.
// Invalid quotes are dropped and counted; a fixture without valid quotes is
// marked OddsUnavailable.
func BuildReport(fixture models.Fixture) models.FixtureReport {
	return buildReport(fixture, zerolog.Nop())
}

func buildReport(fixture models.Fixture, logger zerolog.Logger) models.FixtureReport {
	report := models.FixtureReport{Fixture: fixture}

	sets, errs := calculate.ConvertAll(fixture.Quotes)
	for _, err := range errs {
		logger.Debug().Err(err).Str("fixture", fixture.ID).Msg("Dropping quote")
	}
	report.DroppedQuotes = len(errs)

	for _, s := range sets {
		if s.Suspicious() {
			logger.Debug().
				Str("fixture", fixture.ID).
				Str("bookmaker", s.Bookmaker).
				Float64("raw_sum", s.RawSum).
				Msg("Quote carries no margin")
		}
	}

	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].Bookmaker < sets[j].Bookmaker
	})
	report.Sources = sets

	avg, ok := calculate.Average(sets)
	if !ok {
		report.OddsUnavailable = true
		return report
	}
	report.Average = &avg

	rec, err := calculate.Recommend(avg)
	if err != nil {
		report.OddsUnavailable = true
		return report
	}
	report.Recommendation = &rec
	return report
}

// applyMarkets labels reports with their Polymarket match and, when only is
// set, drops the ones that are not tradable
func applyMarkets(reports []models.FixtureReport, matches map[string]models.MarketMatch, only bool) []models.FixtureReport {
	out := make([]models.FixtureReport, 0, len(reports))
	for _, r := range reports {
		if m, ok := matches[r.Fixture.ID]; ok {
			m := m
			r.Polymarket = &m
		} else if only {
			continue
		}
		out = append(out, r)
	}
	return out
}
