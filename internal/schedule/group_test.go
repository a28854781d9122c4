package schedule

import (
	"reflect"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/Alias1177/OddsPredictor/models"
)

func report(id, league, home, away string, kickoff time.Time) models.FixtureReport {
	return models.FixtureReport{Fixture: models.Fixture{
		ID: id, League: league, HomeTeam: home, AwayTeam: away, Kickoff: kickoff,
	}}
}

func sampleReports() []models.FixtureReport {
	return []models.FixtureReport{
		report("e3", "epl", "Chelsea", "Fulham", time.Date(2024, 8, 18, 15, 0, 0, 0, time.UTC)),
		report("l1", "la_liga", "Girona", "Betis", time.Date(2024, 8, 17, 19, 0, 0, 0, time.UTC)),
		report("e2", "epl", "Arsenal", "Wolves", time.Date(2024, 8, 17, 14, 0, 0, 0, time.UTC)),
		report("e1", "epl", "Arsenal", "Brentford", time.Date(2024, 8, 17, 14, 0, 0, 0, time.UTC)),
		report("e4", "epl", "Everton", "Brighton", time.Date(2024, 8, 17, 23, 30, 0, 0, time.UTC)),
	}
}

func ids(reports []models.FixtureReport) []string {
	out := make([]string, len(reports))
	for i, r := range reports {
		out[i] = r.Fixture.ID
	}
	return out
}

func TestGroupOrdering(t *testing.T) {
	input := sampleReports()
	before := ids(input)

	got := Group(input, time.UTC)

	if len(got) != 2 || got[0].League != "epl" || got[1].League != "la_liga" {
		t.Fatalf("league order wrong: %+v", got)
	}

	epl := got[0]
	if len(epl.Days) != 2 {
		t.Fatalf("epl days = %d, want 2", len(epl.Days))
	}
	if epl.Days[0].Key() != "2024-08-17" || epl.Days[1].Key() != "2024-08-18" {
		t.Errorf("day keys = %s, %s", epl.Days[0].Key(), epl.Days[1].Key())
	}
	if want := []string{"e1", "e2", "e4"}; !reflect.DeepEqual(ids(epl.Days[0].Reports), want) {
		t.Errorf("fixtures on day 1 = %v, want %v", ids(epl.Days[0].Reports), want)
	}

	if !reflect.DeepEqual(ids(input), before) {
		t.Error("input was reordered")
	}
}

func TestGroupUsesReferenceZone(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Fatal(err)
	}

	got := Group(sampleReports(), loc)
	epl := got[0]

	// 23:30 UTC is already the next day in Madrid
	day, ok := epl.Day("2024-08-18")
	if !ok {
		t.Fatal("missing 2024-08-18")
	}
	if want := []string{"e4", "e3"}; !reflect.DeepEqual(ids(day.Reports), want) {
		t.Errorf("fixtures on 18th = %v, want %v", ids(day.Reports), want)
	}
}

func TestGroupIndex(t *testing.T) {
	got := Group(sampleReports(), time.UTC)

	r, ok := got[0].Fixture("e4")
	if !ok || r.Fixture.HomeTeam != "Everton" {
		t.Errorf("Fixture(e4) = %+v, %v", r, ok)
	}
	if _, ok := got[0].Fixture("l1"); ok {
		t.Error("la_liga fixture found in epl schedule")
	}
	if got[0].Count() != 4 || got[1].Count() != 1 {
		t.Errorf("counts = %d, %d", got[0].Count(), got[1].Count())
	}
	if _, ok := got[0].Day("2024-09-01"); ok {
		t.Error("unexpected day")
	}
}

func TestGroupFlattenRoundTrip(t *testing.T) {
	first := Group(sampleReports(), time.UTC)
	flat := Flatten(first)

	if len(flat) != len(sampleReports()) {
		t.Fatalf("flatten lost reports: %d", len(flat))
	}
	if second := Group(flat, time.UTC); !reflect.DeepEqual(first, second) {
		t.Error("regrouping a flattened schedule changed it")
	}
}

func TestGroupEmpty(t *testing.T) {
	if got := Group(nil, nil); len(got) != 0 {
		t.Errorf("Group(nil) = %v", got)
	}
	if got := Flatten(nil); len(got) != 0 {
		t.Errorf("Flatten(nil) = %v", got)
	}
}
