// Package bot implements the Telegram menu: league → match day → fixture.
package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/OddsPredictor/internal/config"
	"github.com/Alias1177/OddsPredictor/internal/eligibility"
	"github.com/Alias1177/OddsPredictor/internal/schedule"
	"github.com/Alias1177/OddsPredictor/models"
)

// Sender is the part of *tgbotapi.BotAPI the handler uses
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Service provides league schedules
type Service interface {
	Schedule(ctx context.Context, league models.League) (schedule.LeagueSchedule, error)
	Location() *time.Location
}

// Handler routes Telegram updates
type Handler struct {
	sender  Sender
	service Service
	leagues []models.League
	checker models.EligibilityChecker
	logger  zerolog.Logger
}

// NewHandler creates a Handler; a nil checker admits everyone
func NewHandler(sender Sender, service Service, leagues []models.League, checker models.EligibilityChecker) *Handler {
	if checker == nil {
		checker = eligibility.AllowAll{}
	}
	return &Handler{
		sender:  sender,
		service: service,
		leagues: leagues,
		checker: checker,
		logger:  log.With().Str("component", "tgbot").Logger(),
	}
}

// Commands returns the setMyCommands request for the league entry commands
func (h *Handler) Commands() tgbotapi.SetMyCommandsConfig {
	commands := make([]tgbotapi.BotCommand, 0, len(h.leagues)+1)
	for _, l := range h.leagues {
		commands = append(commands, tgbotapi.BotCommand{Command: l.Command, Description: l.Name})
	}
	commands = append(commands, tgbotapi.BotCommand{Command: "menu", Description: "Choose a league"})
	return tgbotapi.NewSetMyCommands(commands...)
}

// HandleUpdate processes a single update
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	logger := h.logger.With().Str("request_id", uuid.NewString()).Int("update_id", update.UpdateID).Logger()

	switch {
	case update.Message != nil:
		h.handleMessage(ctx, update.Message, logger)
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery, logger)
	}
}

// target is where a view goes; messageID 0 means a new message
type target struct {
	chatID    int64
	messageID int
}

func (h *Handler) handleMessage(ctx context.Context, message *tgbotapi.Message, logger zerolog.Logger) {
	chatID := message.Chat.ID
	t := target{chatID: chatID}

	if !message.IsCommand() {
		h.show(t, textUseMenu, leaguesKeyboard(h.leagues, logger), logger)
		return
	}

	command := message.Command()
	logger.Info().Int64("chat_id", chatID).Str("command", command).Msg("Command received")

	switch command {
	case "start", "help", "menu":
		h.show(t, textChooseLeague, leaguesKeyboard(h.leagues, logger), logger)
		return
	}

	league, ok := config.FindLeague(h.leagues, command)
	if !ok {
		h.show(t, textUseMenu, leaguesKeyboard(h.leagues, logger), logger)
		return
	}
	h.showDays(ctx, t, league, logger)
}

func (h *Handler) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery, logger zerolog.Logger) {
	// Acknowledge the callback query
	if _, err := h.sender.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		logger.Debug().Err(err).Msg("Failed to answer callback")
	}

	if callback.Message == nil || callback.Message.Chat == nil {
		logger.Warn().Str("data", callback.Data).Msg("Callback without message")
		return
	}
	t := target{chatID: callback.Message.Chat.ID, messageID: callback.Message.MessageID}

	cb, err := ParseCallback(callback.Data)
	if err != nil {
		logger.Warn().Err(err).Msg("Bad callback data")
		h.show(t, textExpired, leaguesKeyboard(h.leagues, logger), logger)
		return
	}
	logger.Debug().Str("action", cb.Action).Str("league", cb.League).Msg("Callback received")

	if cb.Action == ActionLeagues {
		h.show(t, textChooseLeague, leaguesKeyboard(h.leagues, logger), logger)
		return
	}

	league, ok := config.FindLeague(h.leagues, cb.League)
	if !ok {
		h.show(t, textExpired, leaguesKeyboard(h.leagues, logger), logger)
		return
	}

	switch cb.Action {
	case ActionLeague, ActionBackDays:
		h.showDays(ctx, t, league, logger)
	case ActionDay, ActionBackMatches:
		h.showMatchDay(ctx, t, league, cb.Date, logger)
	case ActionMatch:
		var caller models.Caller
		if callback.From != nil {
			caller = models.Caller{ID: callback.From.ID, Source: "telegram"}
		}
		h.showFixture(ctx, t, league, cb.Date, cb.FixtureID, caller, logger)
	}
}

func (h *Handler) showDays(ctx context.Context, t target, league models.League, logger zerolog.Logger) {
	s, ok := h.schedule(ctx, t, league, logger)
	if !ok {
		return
	}
	if len(s.Days) == 0 {
		h.show(t, textNoFixtures, backToLeaguesKeyboard(logger), logger)
		return
	}
	h.show(t, daysText(league), daysKeyboard(s, logger), logger)
}

func (h *Handler) showMatchDay(ctx context.Context, t target, league models.League, date string, logger zerolog.Logger) {
	s, ok := h.schedule(ctx, t, league, logger)
	if !ok {
		return
	}
	day, ok := s.Day(date)
	if !ok || len(day.Reports) == 0 {
		h.show(t, textNoDay, backToDaysKeyboard(league.Key, logger), logger)
		return
	}
	h.show(t, matchDayText(league, day), matchesKeyboard(league.Key, day, h.service.Location(), logger), logger)
}

func (h *Handler) showFixture(ctx context.Context, t target, league models.League, date, fixtureID string, caller models.Caller, logger zerolog.Logger) {
	allowed, err := h.checker.Eligible(ctx, caller, fixtureID)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", caller.ID).Msg("Eligibility check failed")
		h.show(t, textFailure, backToLeaguesKeyboard(logger), logger)
		return
	}
	if !allowed {
		logger.Info().Int64("user_id", caller.ID).Str("fixture", fixtureID).Msg("Caller not eligible")
		h.show(t, textNotEligible, backToLeaguesKeyboard(logger), logger)
		return
	}

	s, ok := h.schedule(ctx, t, league, logger)
	if !ok {
		return
	}
	r, ok := s.Fixture(fixtureID)
	if !ok {
		h.show(t, textNoFixture, backToDaysKeyboard(league.Key, logger), logger)
		return
	}
	h.show(t, fixtureText(r, h.service.Location()), fixtureKeyboard(league.Key, date, fixtureID, logger), logger)
}

func (h *Handler) schedule(ctx context.Context, t target, league models.League, logger zerolog.Logger) (schedule.LeagueSchedule, bool) {
	s, err := h.service.Schedule(ctx, league)
	if err == nil {
		return s, true
	}

	var upErr *models.UpstreamError
	if errors.As(err, &upErr) {
		logger.Warn().Err(err).Str("league", league.Key).Msg("League temporarily unavailable")
		h.show(t, unavailableText(league), backToLeaguesKeyboard(logger), logger)
		return schedule.LeagueSchedule{}, false
	}

	logger.Error().Err(err).Str("league", league.Key).Msg("Failed to build schedule")
	h.show(t, textFailure, backToLeaguesKeyboard(logger), logger)
	return schedule.LeagueSchedule{}, false
}

// show edits the target message in place, sending a new message when the
// edit is not possible
func (h *Handler) show(t target, text string, markup tgbotapi.InlineKeyboardMarkup, logger zerolog.Logger) {
	if t.messageID != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(t.chatID, t.messageID, text, markup)
		edit.ParseMode = tgbotapi.ModeHTML
		_, err := h.sender.Request(edit)
		if err == nil || strings.Contains(err.Error(), "message is not modified") {
			return
		}
		logger.Debug().Err(err).Msg("Failed to edit message, sending new one")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if len(markup.InlineKeyboard) > 0 {
		msg.ReplyMarkup = markup
	}
	if _, err := h.sender.Send(msg); err != nil {
		logger.Error().Err(err).Int64("chat_id", t.chatID).Msg("Failed to send message")
	}
}
