package bot

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Alias1177/OddsPredictor/internal/render"
	"github.com/Alias1177/OddsPredictor/internal/schedule"
	"github.com/Alias1177/OddsPredictor/internal/utils"
	"github.com/Alias1177/OddsPredictor/models"
)

const dayLabelLayout = "Monday 02 Jan"

const (
	textChooseLeague = "⚽️ Choose a league"
	textNoFixtures   = "No upcoming fixtures in the selected window."
	textNoDay        = "No fixtures for that day."
	textNoFixture    = "Fixture details not available."
	textNotEligible  = "You are not allowed to view this fixture."
	textExpired      = "This menu has expired. Please start again."
	textUseMenu      = "Please use the menu buttons to interact with the bot."
	textFailure      = "Sorry, there was an error. Please try again later."
)

func unavailableText(league models.League) string {
	return fmt.Sprintf("⚠️ %s is temporarily unavailable. Please try again later.", html.EscapeString(league.Name))
}

func daysText(league models.League) string {
	return fmt.Sprintf("<b>%s</b>\nChoose a match day", html.EscapeString(league.Name))
}

func matchDayText(league models.League, day schedule.MatchDay) string {
	return fmt.Sprintf("<b>%s</b>\n%s\n\nPick a match:", html.EscapeString(league.Name), day.Date.Format(dayLabelLayout))
}

func matchButtonLabel(r models.FixtureReport, loc *time.Location) string {
	f := r.Fixture
	label := fmt.Sprintf("%s %s vs %s", f.Kickoff.In(loc).Format("15:04"), utils.ShortTeamCode(f.HomeTeam), utils.ShortTeamCode(f.AwayTeam))
	if r.Polymarket != nil {
		label += " 🔮"
	}
	return label
}

// fixtureText renders the fixture detail in HTML
func fixtureText(r models.FixtureReport, loc *time.Location) string {
	f := r.Fixture
	home := html.EscapeString(utils.ShortTeamCode(f.HomeTeam))
	away := html.EscapeString(utils.ShortTeamCode(f.AwayTeam))
	labels := map[models.Outcome]string{
		models.OutcomeHome: home,
		models.OutcomeDraw: "Draw",
		models.OutcomeAway: away,
	}

	var rec models.Outcome
	if r.Recommendation != nil {
		rec = r.Recommendation.Outcome
	}

	lines := []string{
		fmt.Sprintf("<b>%s vs %s</b>", home, away),
		fmt.Sprintf("%s vs %s", html.EscapeString(f.HomeTeam), html.EscapeString(f.AwayTeam)),
		"Kick-off: " + f.Kickoff.In(loc).Format("2006-01-02 15:04 MST"),
	}
	if r.Polymarket != nil {
		lines = append(lines, "🔮 Polymarket: "+html.EscapeString(r.Polymarket.Question))
	}
	lines = append(lines, "")

	if r.OddsUnavailable || r.Average == nil {
		lines = append(lines, "Odds unavailable")
		return strings.Join(lines, "\n")
	}

	lines = append(lines, "<b>Consensus</b>")
	for _, o := range models.OutcomePriority {
		body := labels[o] + " " + render.Percent(r.Average.Probability(o))
		if o == rec {
			lines = append(lines, "🏁 <b>"+body+"</b>")
		} else {
			lines = append(lines, "• "+body)
		}
	}

	lines = append(lines, "", "<b>Recommendation</b>")
	if r.Recommendation != nil {
		lines = append(lines, fmt.Sprintf("🏁 <b>%s</b> (Δ %s)", labels[rec], render.Percent(r.Recommendation.Delta)))
	} else {
		lines = append(lines, "No clear edge")
	}

	lines = append(lines, "")
	if len(r.Sources) == 0 {
		lines = append(lines, "No bookmaker data to display.")
		return strings.Join(lines, "\n")
	}

	lines = append(lines, "<b>Bookmakers</b>")
	for _, s := range r.Sources {
		parts := make([]string, 0, len(models.OutcomePriority))
		for _, o := range models.OutcomePriority {
			part := labels[o] + " " + render.Percent(s.Probability(o))
			if o == rec {
				part = "<b>" + part + "</b>"
			}
			parts = append(parts, part)
		}
		lines = append(lines, html.EscapeString(s.Bookmaker)+": "+strings.Join(parts, " · "))
	}
	if r.DroppedQuotes > 0 {
		lines = append(lines, fmt.Sprintf("<i>%d quote(s) ignored as invalid</i>", r.DroppedQuotes))
	}
	return strings.Join(lines, "\n")
}
