package eligibility

import (
	"context"
	"testing"

	"github.com/Alias1177/OddsPredictor/models"
)

func TestCheckers(t *testing.T) {
	tests := []struct {
		name   string
		ids    []int64
		caller models.Caller
		want   bool
	}{
		{"No list admits everyone", nil, models.Caller{ID: 99, Source: "telegram"}, true},
		{"Listed user", []int64{42, 7}, models.Caller{ID: 7, Source: "telegram"}, true},
		{"Unlisted user", []int64{42}, models.Caller{ID: 8, Source: "telegram"}, false},
		{"CLI caller", []int64{42}, models.Caller{Source: "cli"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromIDs(tt.ids).Eligible(context.Background(), tt.caller, "f1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Eligible() = %v, want %v", got, tt.want)
			}
		})
	}
}
