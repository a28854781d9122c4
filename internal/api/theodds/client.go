package theodds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpClient "github.com/Alias1177/OddsPredictor/internal/platform/http"
	"github.com/Alias1177/OddsPredictor/models"
)

// SourceName labels errors coming from The Odds API
const SourceName = "the-odds-api"

const h2hMarket = "h2h"

// Client is The Odds API v4 client
type Client struct {
	apiKey     string
	baseURL    string
	regions    string
	bookmakers []string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new The Odds API client
type ClientOptions struct {
	APIKey          string
	BaseURL         string
	Regions         string
	Bookmakers      []string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetries      int
	MaxRetryTimeout time.Duration
	InitialInterval time.Duration
}

// NewClient creates a new The Odds API client
func NewClient(options ClientOptions) *Client {
	httpOpts := httpClient.ClientOptions{
		Timeout:         options.RequestTimeout,
		RequestsPerSec:  options.RequestsPerSec,
		MaxRetries:      options.MaxRetries,
		MaxRetryTimeout: options.MaxRetryTimeout,
		InitialInterval: options.InitialInterval,
	}

	// Apply defaults if not set
	if options.BaseURL == "" {
		options.BaseURL = "https://api.the-odds-api.com/v4"
	}
	if options.Regions == "" {
		options.Regions = "uk,eu"
	}

	return &Client{
		apiKey:     options.APIKey,
		baseURL:    strings.TrimRight(options.BaseURL, "/"),
		regions:    options.Regions,
		bookmakers: options.Bookmakers,
		httpClient: httpClient.NewClient(httpOpts),
		logger:     log.With().Str("component", "theodds_client").Logger(),
	}
}

// FetchFixtures fetches upcoming fixtures of a league with match-winner quotes
func (c *Client) FetchFixtures(ctx context.Context, league models.League, window models.Window) ([]models.Fixture, error) {
	events, err := c.GetOdds(ctx, league.SportKey, window)
	if err != nil {
		return nil, err
	}

	fixtures := make([]models.Fixture, 0, len(events))
	for _, ev := range events {
		if ev.ID == "" || ev.HomeTeam == "" || ev.AwayTeam == "" || ev.CommenceTime.IsZero() {
			c.logger.Debug().Str("event_id", ev.ID).Msg("Skipping incomplete event")
			continue
		}
		fixtures = append(fixtures, toFixture(league.Key, ev))
	}

	c.logger.Debug().Str("league", league.Key).Int("count", len(fixtures)).Msg("Fetched fixtures")
	return fixtures, nil
}

// GetOdds fetches raw h2h odds events for a sport key
func (c *Client) GetOdds(ctx context.Context, sportKey string, window models.Window) ([]Event, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", c.regions)
	params.Set("markets", h2hMarket)
	params.Set("oddsFormat", "decimal")
	params.Set("dateFormat", "iso")
	if len(c.bookmakers) > 0 {
		params.Set("bookmakers", strings.Join(c.bookmakers, ","))
	}
	if !window.From.IsZero() {
		params.Set("commenceTimeFrom", window.From.UTC().Format("2006-01-02T15:04:05Z"))
	}
	if !window.To.IsZero() {
		params.Set("commenceTimeTo", window.To.UTC().Format("2006-01-02T15:04:05Z"))
	}

	path := fmt.Sprintf("/sports/%s/odds/", url.PathEscape(sportKey))
	c.logger.Debug().Str("path", path).Str("regions", c.regions).Msg("Fetching odds")

	// Create a new request with context
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &models.UpstreamError{Source: SourceName, Err: fmt.Errorf("creating request: %w", err)}
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, c.upstreamError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.UpstreamError{Source: SourceName, Err: fmt.Errorf("reading response body: %w", err)}
	}

	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		c.logger.Error().Err(err).Str("sport", sportKey).Msg("Error parsing JSON")
		return nil, &models.UpstreamError{Source: SourceName, Err: fmt.Errorf("unexpected response shape: %w", err)}
	}

	if remaining := resp.Header.Get("x-requests-remaining"); remaining != "" {
		c.logger.Debug().Str("remaining", remaining).Msg("Odds API quota")
	}

	return events, nil
}

func (c *Client) upstreamError(err error) error {
	var statusErr *httpClient.HTTPStatusError
	if errors.As(err, &statusErr) {
		msg := statusErr.Body
		var apiErr errorResponse
		if json.Unmarshal([]byte(statusErr.Body), &apiErr) == nil && apiErr.Message != "" {
			msg = apiErr.Message
		}
		c.logger.Error().Int("status", statusErr.StatusCode).Str("message", msg).Msg("The Odds API error")
		return &models.UpstreamError{Source: SourceName, StatusCode: statusErr.StatusCode, Err: errors.New(msg)}
	}
	return &models.UpstreamError{Source: SourceName, Err: fmt.Errorf("HTTP request failed: %w", err)}
}

func toFixture(leagueKey string, ev Event) models.Fixture {
	fixture := models.Fixture{
		ID:       ev.ID,
		League:   leagueKey,
		HomeTeam: ev.HomeTeam,
		AwayTeam: ev.AwayTeam,
		Kickoff:  ev.CommenceTime.UTC(),
	}

	for _, bm := range ev.Bookmakers {
		market, ok := findMarket(bm.Markets, h2hMarket)
		if !ok {
			continue
		}

		quote := models.BookmakerQuote{
			Bookmaker:  bm.Key,
			FixtureID:  ev.ID,
			LastUpdate: market.LastUpdate,
		}
		if quote.Bookmaker == "" {
			quote.Bookmaker = "unknown"
		}
		if quote.LastUpdate.IsZero() {
			quote.LastUpdate = bm.LastUpdate
		}

		for _, o := range market.Outcomes {
			switch {
			case o.Name == ev.HomeTeam:
				quote.Home = o.Price
			case o.Name == ev.AwayTeam:
				quote.Away = o.Price
			case strings.EqualFold(o.Name, "draw") || strings.EqualFold(o.Name, "tie"):
				quote.Draw = o.Price
			}
		}
		fixture.Quotes = append(fixture.Quotes, quote)
	}

	return fixture
}

func findMarket(markets []Market, key string) (Market, bool) {
	for _, m := range markets {
		if m.Key == key {
			return m, true
		}
	}
	return Market{}, false
}
