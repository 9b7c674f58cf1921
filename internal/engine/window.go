package engine

import (
	"time"

	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/utils"
)

// windowBounds returns the aggregation bounds for a window ending on day.
// Week and month windows are cumulative-to-date: they start at the Monday of
// the ISO week (resp. the first of the month) and end on the day itself, so
// a day's logging can still change completion state mid-period.
func windowBounds(day time.Time, window models.TargetWindow) (time.Time, time.Time) {
	switch window {
	case models.WindowWeek:
		return utils.WeekStart(day), day
	case models.WindowMonth:
		start, _ := utils.MonthBounds(day)
		return start, day
	default:
		return day, day
	}
}

// aggregate computes the raw progress value and sample count for one goal
// version over the window ending on day.
//
// Count and binary modes sum event count x tag weight over events in bounds
// whose tag is in the version's weighted set; samples is the number of
// distinct days with at least one contributing event. Rating mode averages
// the recorded ratings in bounds; a window with no ratings yields progress 0
// with samples 0 rather than an error.
func aggregate(idx *index, version *models.GoalVersion, day time.Time) (progress float64, samples, windowDays int) {
	start, end := windowBounds(day, version.TargetWindow)
	windowDays = utils.DaysBetween(start, end)

	if version.ScoringMode == models.ModeRating {
		byDate := idx.ratingsByGoalDate[version.GoalID]
		sum := 0
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if rating, ok := byDate[utils.FormatDate(d)]; ok {
				sum += rating
				samples++
			}
		}
		if samples > 0 {
			progress = float64(sum) / float64(samples)
		}
		return progress, samples, windowDays
	}

	contributingDays := make(map[string]struct{})
	for tagID, weight := range version.TagWeights {
		byDate := idx.eventsByTagDate[tagID]
		if byDate == nil {
			continue
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			dateStr := utils.FormatDate(d)
			if count := byDate[dateStr]; count > 0 {
				progress += float64(count) * weight
				contributingDays[dateStr] = struct{}{}
			}
		}
	}
	return progress, len(contributingDays), windowDays
}
