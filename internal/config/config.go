package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/OddsPredictor/models"
)

// Secret names a required environment variable
type Secret string

const (
	SecretOddsAPIKey Secret = "THE_ODDS_API_KEY"
	SecretBotToken   Secret = "TELEGRAM_BOT_TOKEN"
)

// DefaultBookmakers are the UK/EU books requested when none are configured
var DefaultBookmakers = []string{
	"bet365",
	"paddypower",
	"williamhill",
	"ladbrokes",
	"betfair",
	"skybet",
	"marathonbet",
	"unibet",
	"betvictor",
	"pinnacle",
}

// Config holds all application configuration
type Config struct {
	OddsAPIKey         string
	TelegramBotToken   string
	OddsBaseURL        string
	Regions            string
	Bookmakers         []string
	DaysAhead          int
	CacheTTL           time.Duration
	RequestTimeout     int // seconds
	RequestsPerSec     int
	MaxRetries         int
	PolymarketEndpoint string
	PolymarketLimit    int
	PolymarketOnly     bool
	MatchDayTZ         string
	LeaguesFile        string
	RedisURL           string
	HealthAddr         string
	AllowedUserIDs     []int64
	LogLevel           string

	Leagues []models.League
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.OddsAPIKey = strings.TrimSpace(os.Getenv(string(SecretOddsAPIKey)))
	cfg.TelegramBotToken = strings.TrimSpace(os.Getenv(string(SecretBotToken)))
	cfg.OddsBaseURL = getEnvWithDefault("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4")
	cfg.Regions = getEnvWithDefault("ODDS_REGIONS", "uk,eu")
	cfg.Bookmakers = getEnvListWithDefault("ODDS_BOOKMAKERS", nil)
	cfg.DaysAhead = getEnvIntWithDefault("DAYS_AHEAD", 7)
	cfg.CacheTTL = getEnvDurationWithDefault("ODDS_CACHE_TTL", 5*time.Minute)
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 10)
	cfg.RequestsPerSec = getEnvIntWithDefault("REQUESTS_PER_SEC", 5)
	cfg.MaxRetries = getEnvIntWithDefault("MAX_RETRIES", 3)
	cfg.PolymarketEndpoint = getEnvWithDefault("POLYMARKET_ENDPOINT", "https://gamma-api.polymarket.com/markets")
	cfg.PolymarketLimit = getEnvIntWithDefault("POLYMARKET_LIMIT", 1000)
	cfg.PolymarketOnly = getEnvBoolWithDefault("POLYMARKET_ONLY", false)
	cfg.MatchDayTZ = getEnvWithDefault("MATCHDAY_TZ", "UTC")
	cfg.LeaguesFile = os.Getenv("LEAGUES_FILE")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.HealthAddr = os.Getenv("HEALTH_ADDR")
	cfg.AllowedUserIDs = getEnvInt64List("ALLOWED_USER_IDS")
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")

	cfg.Leagues = DefaultLeagues()
	if cfg.LeaguesFile != "" {
		catalog, err := LoadCatalog(cfg.LeaguesFile)
		if err != nil {
			return nil, err
		}
		cfg.Leagues = catalog.Leagues
		if len(cfg.Bookmakers) == 0 {
			cfg.Bookmakers = catalog.Bookmakers
		}
	}
	if len(cfg.Bookmakers) == 0 {
		cfg.Bookmakers = append([]string(nil), DefaultBookmakers...)
	}

	return &cfg, nil
}

// Require returns a ConfigurationError for the first missing secret
func (c *Config) Require(secrets ...Secret) error {
	for _, s := range secrets {
		var value string
		switch s {
		case SecretOddsAPIKey:
			value = c.OddsAPIKey
		case SecretBotToken:
			value = c.TelegramBotToken
		}
		if value == "" {
			return &models.ConfigurationError{Key: string(s)}
		}
	}
	return nil
}

// Location returns the reference timezone for match days
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.MatchDayTZ)
	if err != nil {
		log.Warn().Err(err).Str("tz", c.MatchDayTZ).Msg("Unknown MATCHDAY_TZ, falling back to UTC")
		return time.UTC
	}
	return loc
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvListWithDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return SplitList(value)
}

func getEnvInt64List(key string) []int64 {
	var ids []int64
	for _, part := range SplitList(os.Getenv(key)) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Warn().Str("key", key).Str("value", part).Msg("Skipping invalid user id")
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// SplitList splits a comma separated value, dropping empty items
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
