// Package schedule organises fixture reports into league → match day → fixture.
package schedule

import (
	"sort"
	"time"

	"github.com/Alias1177/OddsPredictor/models"
)

// MatchDay is one calendar date in the reference zone
type MatchDay struct {
	Date    time.Time              `json:"date"`
	Reports []models.FixtureReport `json:"reports"`
}

// Key returns the ISO date of the day
func (d MatchDay) Key() string {
	return d.Date.Format(models.DateLayout)
}

type position struct {
	day     int
	fixture int
}

// LeagueSchedule is the fixtures of one league grouped by day
type LeagueSchedule struct {
	League string     `json:"league"`
	Days   []MatchDay `json:"days"`

	index map[string]position
}

// Day returns the match day with the given ISO date
func (s LeagueSchedule) Day(date string) (MatchDay, bool) {
	for _, d := range s.Days {
		if d.Key() == date {
			return d, true
		}
	}
	return MatchDay{}, false
}

// Fixture looks a report up by fixture id
func (s LeagueSchedule) Fixture(id string) (models.FixtureReport, bool) {
	pos, ok := s.index[id]
	if !ok {
		return models.FixtureReport{}, false
	}
	return s.Days[pos.day].Reports[pos.fixture], true
}

// Count returns the number of fixtures in the schedule
func (s LeagueSchedule) Count() int {
	return len(s.index)
}

// Group groups reports by league, then by kick-off date in loc.
// Leagues ascend by key, days by date, and fixtures by kick-off with
// home team, away team and id as tie-breakers. The input is not modified.
func Group(reports []models.FixtureReport, loc *time.Location) []LeagueSchedule {
	if loc == nil {
		loc = time.UTC
	}

	sorted := make([]models.FixtureReport, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i].Fixture, sorted[j].Fixture)
	})

	byLeague := make(map[string][]models.FixtureReport)
	var leagues []string
	for _, r := range sorted {
		if _, ok := byLeague[r.Fixture.League]; !ok {
			leagues = append(leagues, r.Fixture.League)
		}
		byLeague[r.Fixture.League] = append(byLeague[r.Fixture.League], r)
	}
	sort.Strings(leagues)

	result := make([]LeagueSchedule, 0, len(leagues))
	for _, league := range leagues {
		result = append(result, groupLeague(league, byLeague[league], loc))
	}
	return result
}

// groupLeague expects reports already in kick-off order
func groupLeague(league string, reports []models.FixtureReport, loc *time.Location) LeagueSchedule {
	s := LeagueSchedule{League: league, index: make(map[string]position, len(reports))}

	for _, r := range reports {
		date := models.MatchDate(r.Fixture.Kickoff, loc)
		last := len(s.Days) - 1
		if last < 0 || !s.Days[last].Date.Equal(date) {
			s.Days = append(s.Days, MatchDay{Date: date})
			last++
		}
		s.Days[last].Reports = append(s.Days[last].Reports, r)
		s.index[r.Fixture.ID] = position{day: last, fixture: len(s.Days[last].Reports) - 1}
	}
	return s
}

// Flatten returns every report of the schedules in display order
func Flatten(schedules []LeagueSchedule) []models.FixtureReport {
	var out []models.FixtureReport
	for _, s := range schedules {
		for _, d := range s.Days {
			out = append(out, d.Reports...)
		}
	}
	return out
}

func less(a, b models.Fixture) bool {
	if !a.Kickoff.Equal(b.Kickoff) {
		return a.Kickoff.Before(b.Kickoff)
	}
	if a.HomeTeam != b.HomeTeam {
		return a.HomeTeam < b.HomeTeam
	}
	if a.AwayTeam != b.AwayTeam {
		return a.AwayTeam < b.AwayTeam
	}
	return a.ID < b.ID
}
