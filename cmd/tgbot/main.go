package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/OddsPredictor/internal/analyze"
	"github.com/Alias1177/OddsPredictor/internal/bot"
	"github.com/Alias1177/OddsPredictor/internal/cache"
	"github.com/Alias1177/OddsPredictor/internal/config"
	"github.com/Alias1177/OddsPredictor/internal/eligibility"
	"github.com/Alias1177/OddsPredictor/internal/health"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	logger := config.SetupLogger(cfg.LogLevel)

	if err := cfg.Require(config.SecretOddsAPIKey, config.SecretBotToken); err != nil {
		logger.Fatal().Err(err).Msg("Missing configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer, store, closeStore := analyze.FromConfig(ctx, cfg)
	defer closeStore()

	// Initialize Telegram bot
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}
	logger.Info().Str("username", api.Self.UserName).Msg("Authorized on Telegram")

	handler := bot.NewHandler(api, analyzer, cfg.Leagues, eligibility.FromIDs(cfg.AllowedUserIDs))
	if _, err := api.Request(handler.Commands()); err != nil {
		logger.Warn().Err(err).Msg("Failed to register bot commands")
	}

	var healthServer *health.Server
	if cfg.HealthAddr != "" {
		stats, _ := store.(cache.StatsReporter)
		healthServer = health.NewServer(cfg.HealthAddr, config.LeagueKeys(cfg.Leagues), stats)
		healthServer.Start()
	}

	// Setup update configuration
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := api.GetUpdatesChan(updateConfig)

	logger.Info().
		Strs("leagues", config.LeagueKeys(cfg.Leagues)).
		Dur("cache_ttl", cfg.CacheTTL).
		Bool("polymarket_only", cfg.PolymarketOnly).
		Msg("Bot started")

	// Updates are handled one at a time
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Shutdown signal received, stopping bot")
			api.StopReceivingUpdates()
			if healthServer != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				if err := healthServer.Shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("Health server shutdown failed")
				}
				cancel()
			}
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			handler.HandleUpdate(ctx, update)
		}
	}
}
