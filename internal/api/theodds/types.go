package theodds

import "time"

// Event is one fixture as returned by GET /sports/{sport}/odds
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker holds the markets one bookmaker offers for an event
type Bookmaker struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	LastUpdate time.Time `json:"last_update"`
	Markets    []Market  `json:"markets"`
}

// Market is a single betting market, "h2h" for match winner
type Market struct {
	Key        string    `json:"key"`
	LastUpdate time.Time `json:"last_update"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Outcome is a priced selection within a market
type Outcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// errorResponse is the body The Odds API sends with non-200 statuses
type errorResponse struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}
