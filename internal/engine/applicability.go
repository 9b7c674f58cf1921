package engine

import "github.com/julianstephens/goaltrack/internal/models"

// applicable reports whether a goal version applies on a date given the
// day's recorded condition values. Every required condition must be present
// with exactly the required value; a missing record counts as a non-match,
// so an unknown day state blocks conditional goals instead of assuming
// anything about it. A version with no required conditions always applies.
func applicable(version *models.GoalVersion, dayConditions map[string]bool) bool {
	if len(version.Conditions) == 0 {
		return true
	}
	for conditionID, required := range version.Conditions {
		value, recorded := dayConditions[conditionID]
		if !recorded || value != required {
			return false
		}
	}
	return true
}
