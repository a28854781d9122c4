package theodds

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Alias1177/OddsPredictor/models"
)

const oddsFixture = `[
  {
    "id": "evt-1",
    "sport_key": "soccer_epl",
    "commence_time": "2024-08-17T14:00:00Z",
    "home_team": "Arsenal",
    "away_team": "Wolverhampton Wanderers",
    "bookmakers": [
      {
        "key": "pinnacle",
        "title": "Pinnacle",
        "last_update": "2024-08-16T10:00:00Z",
        "markets": [
          {
            "key": "h2h",
            "outcomes": [
              {"name": "Wolverhampton Wanderers", "price": 9.5},
              {"name": "Arsenal", "price": 1.3},
              {"name": "Draw", "price": 5.8}
            ]
          }
        ]
      },
      {
        "key": "betfair",
        "markets": [
          {
            "key": "h2h",
            "last_update": "2024-08-16T11:00:00Z",
            "outcomes": [
              {"name": "Arsenal", "price": 1.32},
              {"name": "Wolverhampton Wanderers", "price": 9.0}
            ]
          }
        ]
      },
      {
        "key": "spreadsonly",
        "markets": [{"key": "spreads", "outcomes": []}]
      }
    ]
  },
  {
    "id": "",
    "commence_time": "2024-08-17T16:30:00Z",
    "home_team": "Brentford",
    "away_team": "Crystal Palace"
  }
]`

func newTestClient(baseURL string) *Client {
	return NewClient(ClientOptions{
		APIKey:          "secret",
		BaseURL:         baseURL,
		Regions:         "uk",
		Bookmakers:      []string{"pinnacle", "betfair"},
		RequestTimeout:  2 * time.Second,
		RequestsPerSec:  100,
		MaxRetries:      1,
		InitialInterval: time.Millisecond,
	})
}

func TestFetchFixtures(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		q := r.URL.Query()
		gotQuery = map[string]string{
			"apiKey":           q.Get("apiKey"),
			"regions":          q.Get("regions"),
			"markets":          q.Get("markets"),
			"oddsFormat":       q.Get("oddsFormat"),
			"bookmakers":       q.Get("bookmakers"),
			"commenceTimeFrom": q.Get("commenceTimeFrom"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(oddsFixture))
	}))
	defer server.Close()

	league := models.League{Key: "epl", SportKey: "soccer_epl"}
	window := models.NewWindow(time.Date(2024, 8, 15, 9, 30, 0, 0, time.UTC), 7)

	fixtures, err := newTestClient(server.URL).FetchFixtures(context.Background(), league, window)
	if err != nil {
		t.Fatalf("FetchFixtures() error: %v", err)
	}

	if gotPath != "/sports/soccer_epl/odds/" {
		t.Errorf("path = %s", gotPath)
	}
	want := map[string]string{
		"apiKey":           "secret",
		"regions":          "uk",
		"markets":          "h2h",
		"oddsFormat":       "decimal",
		"bookmakers":       "pinnacle,betfair",
		"commenceTimeFrom": "2024-08-15T09:30:00Z",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}

	if len(fixtures) != 1 {
		t.Fatalf("got %d fixtures, want 1 (incomplete event skipped)", len(fixtures))
	}
	f := fixtures[0]
	if f.ID != "evt-1" || f.League != "epl" || f.HomeTeam != "Arsenal" {
		t.Errorf("unexpected fixture: %+v", f)
	}
	if len(f.Quotes) != 2 {
		t.Fatalf("got %d quotes, want 2 (non-h2h bookmaker skipped)", len(f.Quotes))
	}

	pin := f.Quotes[0]
	if pin.Bookmaker != "pinnacle" || pin.Home != 1.3 || pin.Draw != 5.8 || pin.Away != 9.5 {
		t.Errorf("pinnacle quote = %+v", pin)
	}
	if !pin.LastUpdate.Equal(time.Date(2024, 8, 16, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("pinnacle last update = %v, want bookmaker fallback", pin.LastUpdate)
	}

	bf := f.Quotes[1]
	if bf.Draw != 0 {
		t.Errorf("missing draw should stay 0, got %v", bf.Draw)
	}
	if !bf.LastUpdate.Equal(time.Date(2024, 8, 16, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("betfair last update = %v", bf.LastUpdate)
	}
}

func TestFetchFixturesUpstreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr int
	}{
		{"Unauthorized", http.StatusUnauthorized, `{"message":"API key is not valid","error_code":"INVALID_KEY"}`, http.StatusUnauthorized},
		{"Malformed body", http.StatusOK, `{"unexpected": true}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).FetchFixtures(context.Background(),
				models.League{Key: "epl", SportKey: "soccer_epl"}, models.NewWindow(time.Now(), 7))

			var upErr *models.UpstreamError
			if !errors.As(err, &upErr) {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if upErr.Source != SourceName {
				t.Errorf("source = %s", upErr.Source)
			}
			if upErr.StatusCode != tt.wantErr {
				t.Errorf("status = %d, want %d", upErr.StatusCode, tt.wantErr)
			}
		})
	}
}
