package polymarket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpClient "github.com/Alias1177/OddsPredictor/internal/platform/http"
	"github.com/Alias1177/OddsPredictor/models"
)

// SourceName labels errors coming from Polymarket
const SourceName = "polymarket"

// DefaultEndpoint is the Gamma markets API
const DefaultEndpoint = "https://gamma-api.polymarket.com/markets"

// ErrUnexpectedShape is wrapped when the markets body is neither a list nor {"markets": [...]}
var ErrUnexpectedShape = errors.New("unexpected markets response shape")

// Market represents a Gamma API market
type Market struct {
	ID        MarketID            `json:"id"`
	Question  string              `json:"question"`
	Slug      string              `json:"slug"`
	Active    *bool               `json:"active"`
	Closed    bool                `json:"closed"`
	StartDate string              `json:"startDate"`
	EndDate   string              `json:"endDate"`
	Volume    decimal.NullDecimal `json:"volume"`
}

// Tradable reports an open market with a question
func (m Market) Tradable() bool {
	active := m.Active == nil || *m.Active
	return active && !m.Closed && strings.TrimSpace(m.Question) != ""
}

// MarketID accepts both string and numeric ids
type MarketID string

// UnmarshalJSON implements json.Unmarshaler
func (id *MarketID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = MarketID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = MarketID(n.String())
	return nil
}

type wrappedMarkets struct {
	Markets *[]Market `json:"markets"`
}

// Client fetches active Polymarket markets
type Client struct {
	endpoint   string
	limit      int
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Polymarket client
type ClientOptions struct {
	Endpoint        string
	Limit           int
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetries      int
	InitialInterval time.Duration
}

// NewClient creates a new Polymarket client
func NewClient(options ClientOptions) *Client {
	if options.Endpoint == "" {
		options.Endpoint = DefaultEndpoint
	}
	if options.Limit <= 0 {
		options.Limit = 1000
	}

	return &Client{
		endpoint: options.Endpoint,
		limit:    options.Limit,
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:         options.RequestTimeout,
			RequestsPerSec:  options.RequestsPerSec,
			MaxRetries:      options.MaxRetries,
			InitialInterval: options.InitialInterval,
		}),
		logger: log.With().Str("component", "polymarket_client").Logger(),
	}
}

// ActiveMarkets returns open markets that carry a question
func (c *Client) ActiveMarkets(ctx context.Context) ([]Market, error) {
	params := url.Values{}
	params.Set("closed", "false")
	params.Set("active", "true")
	params.Set("limit", strconv.Itoa(c.limit))

	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+sep+params.Encode(), nil)
	if err != nil {
		return nil, &models.UpstreamError{Source: SourceName, Err: fmt.Errorf("creating request: %w", err)}
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		var statusErr *httpClient.HTTPStatusError
		if errors.As(err, &statusErr) {
			return nil, &models.UpstreamError{Source: SourceName, StatusCode: statusErr.StatusCode, Err: err}
		}
		return nil, &models.UpstreamError{Source: SourceName, Err: fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.UpstreamError{Source: SourceName, Err: fmt.Errorf("reading response body: %w", err)}
	}

	raw, err := decodeMarkets(body)
	if err != nil {
		c.logger.Error().Err(err).Msg("Error parsing markets")
		return nil, &models.UpstreamError{Source: SourceName, Err: err}
	}

	markets := make([]Market, 0, len(raw))
	for _, m := range raw {
		if m.Tradable() {
			markets = append(markets, m)
		}
	}

	c.logger.Debug().Int("received", len(raw)).Int("tradable", len(markets)).Msg("Fetched markets")
	return markets, nil
}

func decodeMarkets(body []byte) ([]Market, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrUnexpectedShape
	}

	switch trimmed[0] {
	case '[':
		var markets []Market
		if err := json.Unmarshal(trimmed, &markets); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}
		return markets, nil
	case '{':
		var wrapped wrappedMarkets
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}
		if wrapped.Markets == nil {
			return nil, fmt.Errorf("%w: object without markets", ErrUnexpectedShape)
		}
		return *wrapped.Markets, nil
	}
	return nil, ErrUnexpectedShape
}
