package engine

import (
	"fmt"

	"github.com/julianstephens/goaltrack/internal/models"
)

// ResolveVersion returns the goal version in effect on the given date: the
// latest version whose effective-from is <= date. Versions form closed-open
// intervals, so version i governs [effectiveFrom_i, effectiveFrom_i+1).
// Returns nil when the date precedes the earliest version; that is a defined
// outcome (the goal is simply not applicable yet), not an error.
func ResolveVersion(versions []models.GoalVersion, date string) *models.GoalVersion {
	var effective *models.GoalVersion
	for i := range versions {
		version := &versions[i]
		if version.EffectiveFrom > date {
			continue
		}
		if effective == nil || version.EffectiveFrom > effective.EffectiveFrom {
			effective = version
		}
	}
	return effective
}

// ValidateHistory rejects a version history whose effective-from dates are
// not strictly increasing, or whose versions are individually malformed.
// Malformed history is a data-integrity error the engine refuses to score
// rather than silently reinterpret.
func ValidateHistory(goalID string, versions []models.GoalVersion) error {
	prev := ""
	for i := range versions {
		version := &versions[i]
		if err := version.Validate(); err != nil {
			return fmt.Errorf("goal %s version %d: %w", goalID, version.Version, err)
		}
		if prev != "" && version.EffectiveFrom <= prev {
			return fmt.Errorf("goal %s: version effective-from dates must be strictly increasing (%s followed by %s)",
				goalID, prev, version.EffectiveFrom)
		}
		prev = version.EffectiveFrom
	}
	return nil
}
