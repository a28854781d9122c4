// Package eligibility decides who may see fixture details.
package eligibility

import (
	"context"

	"github.com/Alias1177/OddsPredictor/models"
)

// AllowAll lets every caller through
type AllowAll struct{}

// Eligible implements models.EligibilityChecker
func (AllowAll) Eligible(ctx context.Context, caller models.Caller, fixtureID string) (bool, error) {
	return true, nil
}

// Allowlist admits only the listed user ids. Callers without an id, such as
// the CLI, are always admitted.
type Allowlist struct {
	ids map[int64]struct{}
}

// NewAllowlist creates an allowlist from user ids
func NewAllowlist(ids []int64) *Allowlist {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &Allowlist{ids: set}
}

// Eligible implements models.EligibilityChecker
func (a *Allowlist) Eligible(ctx context.Context, caller models.Caller, fixtureID string) (bool, error) {
	if caller.ID == 0 {
		return true, nil
	}
	_, ok := a.ids[caller.ID]
	return ok, nil
}

// FromIDs returns an Allowlist when ids are configured and AllowAll otherwise
func FromIDs(ids []int64) models.EligibilityChecker {
	if len(ids) == 0 {
		return AllowAll{}
	}
	return NewAllowlist(ids)
}
