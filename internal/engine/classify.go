package engine

import "github.com/julianstephens/goaltrack/internal/models"

// classify maps progress against target to a status. Equality is always met,
// never partial, in every scoring mode. A rating window with no samples is
// missed regardless of the zero progress value it reports.
func classify(isApplicable bool, mode models.ScoringMode, progress, target float64, samples int) models.Status {
	if !isApplicable {
		return models.StatusNA
	}
	if mode == models.ModeRating && samples == 0 {
		return models.StatusMissed
	}
	switch {
	case progress >= target:
		return models.StatusMet
	case progress > 0:
		return models.StatusPartial
	default:
		return models.StatusMissed
	}
}
