package bot

import (
	"errors"
	"strings"
	"testing"
)

func TestCallbackEncodeParse(t *testing.T) {
	tests := []struct {
		name string
		cb   Callback
		data string
	}{
		{"Leagues", Callback{Action: ActionLeagues}, "leagues"},
		{"League", Callback{Action: ActionLeague, League: "epl"}, "league:epl"},
		{"Day", Callback{Action: ActionDay, League: "la_liga", Date: "2024-08-17"}, "day:la_liga:2024-08-17"},
		{"Match", Callback{Action: ActionMatch, League: "la_liga", Date: "2024-08-17", FixtureID: "0123456789abcdef0123456789abcdef"},
			"match:la_liga:2024-08-17:0123456789abcdef0123456789abcdef"},
		{"Back to days", Callback{Action: ActionBackDays, League: "bundesliga"}, "backdays:bundesliga"},
		{"Back to matches", Callback{Action: ActionBackMatches, League: "epl", Date: "2024-08-18"}, "backmatches:epl:2024-08-18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.cb.Encode()
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if data != tt.data {
				t.Errorf("Encode() = %s, want %s", data, tt.data)
			}
			if len(data) > MaxCallbackBytes {
				t.Errorf("%d bytes exceeds limit", len(data))
			}
			got, err := ParseCallback(data)
			if err != nil {
				t.Fatalf("ParseCallback() error: %v", err)
			}
			if got != tt.cb {
				t.Errorf("ParseCallback() = %+v, want %+v", got, tt.cb)
			}
		})
	}
}

func TestCallbackTooLong(t *testing.T) {
	cb := Callback{Action: ActionMatch, League: "epl", Date: "2024-08-17", FixtureID: strings.Repeat("x", 60)}
	if _, err := cb.Encode(); !errors.Is(err, ErrCallbackTooLong) {
		t.Errorf("expected ErrCallbackTooLong, got %v", err)
	}
}

func TestParseCallbackRejects(t *testing.T) {
	for _, data := range []string{
		"",
		"nope",
		"league",
		"league:",
		"day:epl",
		"day:epl:17-08-2024",
		"match:epl:2024-08-17",
		"match:epl:2024-08-17:",
		"leagues:extra",
		strings.Repeat("a", 65),
	} {
		if _, err := ParseCallback(data); !errors.Is(err, ErrInvalidCallback) {
			t.Errorf("ParseCallback(%q) = %v, want ErrInvalidCallback", data, err)
		}
	}
}
