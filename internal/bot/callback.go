package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Alias1177/OddsPredictor/models"
)

// MaxCallbackBytes is Telegram's limit for inline button data
const MaxCallbackBytes = 64

// Callback prefixes
const (
	ActionLeague      = "league"
	ActionDay         = "day"
	ActionMatch       = "match"
	ActionBackDays    = "backdays"
	ActionBackMatches = "backmatches"
	ActionLeagues     = "leagues"
)

var (
	ErrCallbackTooLong = errors.New("callback data exceeds 64 bytes")
	ErrInvalidCallback = errors.New("invalid callback data")
)

// Callback carries the whole navigation state of a button press
type Callback struct {
	Action    string
	League    string
	Date      string
	FixtureID string
}

// Encode renders the callback as button data
func (c Callback) Encode() (string, error) {
	var parts []string
	switch c.Action {
	case ActionLeagues:
		parts = []string{c.Action}
	case ActionLeague, ActionBackDays:
		parts = []string{c.Action, c.League}
	case ActionDay, ActionBackMatches:
		parts = []string{c.Action, c.League, c.Date}
	case ActionMatch:
		parts = []string{c.Action, c.League, c.Date, c.FixtureID}
	default:
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidCallback, c.Action)
	}

	data := strings.Join(parts, ":")
	if len(data) > MaxCallbackBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrCallbackTooLong, len(data))
	}
	return data, nil
}

// ParseCallback decodes button data
func ParseCallback(data string) (Callback, error) {
	if data == "" || len(data) > MaxCallbackBytes {
		return Callback{}, ErrInvalidCallback
	}

	parts := strings.SplitN(data, ":", 4)
	c := Callback{Action: parts[0]}

	want := map[string]int{
		ActionLeagues:     1,
		ActionLeague:      2,
		ActionBackDays:    2,
		ActionDay:         3,
		ActionBackMatches: 3,
		ActionMatch:       4,
	}
	n, ok := want[c.Action]
	if !ok || len(parts) != n {
		return Callback{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
	}

	if n >= 2 {
		c.League = parts[1]
		if c.League == "" {
			return Callback{}, fmt.Errorf("%w: empty league", ErrInvalidCallback)
		}
	}
	if n >= 3 {
		c.Date = parts[2]
		if _, err := time.Parse(models.DateLayout, c.Date); err != nil {
			return Callback{}, fmt.Errorf("%w: bad date %q", ErrInvalidCallback, c.Date)
		}
	}
	if n == 4 {
		c.FixtureID = parts[3]
		if c.FixtureID == "" {
			return Callback{}, fmt.Errorf("%w: empty fixture id", ErrInvalidCallback)
		}
	}
	return c, nil
}
