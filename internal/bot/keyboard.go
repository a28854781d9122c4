package bot

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/Alias1177/OddsPredictor/internal/schedule"
	"github.com/Alias1177/OddsPredictor/models"
)

// keyboard collects one-button rows, skipping buttons whose data does not fit
type keyboard struct {
	rows   [][]tgbotapi.InlineKeyboardButton
	logger zerolog.Logger
}

func (k *keyboard) add(text string, cb Callback) {
	data, err := cb.Encode()
	if err != nil {
		k.logger.Warn().Err(err).Str("action", cb.Action).Msg("Skipping button")
		return
	}
	k.rows = append(k.rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(text, data)))
}

func (k *keyboard) markup() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(k.rows...)
}

func leaguesKeyboard(leagues []models.League, logger zerolog.Logger) tgbotapi.InlineKeyboardMarkup {
	k := keyboard{logger: logger}
	for _, l := range leagues {
		k.add(l.Name, Callback{Action: ActionLeague, League: l.Key})
	}
	return k.markup()
}

func daysKeyboard(s schedule.LeagueSchedule, logger zerolog.Logger) tgbotapi.InlineKeyboardMarkup {
	k := keyboard{logger: logger}
	for _, d := range s.Days {
		k.add(d.Date.Format(dayLabelLayout), Callback{Action: ActionDay, League: s.League, Date: d.Key()})
	}
	k.add("🏟 Leagues", Callback{Action: ActionLeagues})
	return k.markup()
}

func matchesKeyboard(league string, day schedule.MatchDay, loc *time.Location, logger zerolog.Logger) tgbotapi.InlineKeyboardMarkup {
	k := keyboard{logger: logger}
	for _, r := range day.Reports {
		k.add(matchButtonLabel(r, loc), Callback{Action: ActionMatch, League: league, Date: day.Key(), FixtureID: r.Fixture.ID})
	}
	k.add("⬅️ Back to days", Callback{Action: ActionBackDays, League: league})
	k.add("🏟 Leagues", Callback{Action: ActionLeagues})
	return k.markup()
}

func fixtureKeyboard(league, date, fixtureID string, logger zerolog.Logger) tgbotapi.InlineKeyboardMarkup {
	k := keyboard{logger: logger}
	k.add("⬅️ Back to matches", Callback{Action: ActionBackMatches, League: league, Date: date})
	k.add("🔄 Refresh", Callback{Action: ActionMatch, League: league, Date: date, FixtureID: fixtureID})
	k.add("🏟 Leagues", Callback{Action: ActionLeagues})
	return k.markup()
}

func backToDaysKeyboard(league string, logger zerolog.Logger) tgbotapi.InlineKeyboardMarkup {
	k := keyboard{logger: logger}
	k.add("⬅️ Back to days", Callback{Action: ActionBackDays, League: league})
	k.add("🏟 Leagues", Callback{Action: ActionLeagues})
	return k.markup()
}

func backToLeaguesKeyboard(logger zerolog.Logger) tgbotapi.InlineKeyboardMarkup {
	k := keyboard{logger: logger}
	k.add("🏟 Leagues", Callback{Action: ActionLeagues})
	return k.markup()
}
