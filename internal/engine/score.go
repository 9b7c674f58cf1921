package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/utils"
)

// GoalStatus is the derived scoring record for one goal on one date. It is
// recomputed on every read and never persisted, so it always reflects the
// current event/rating log under the historically correct goal version.
type GoalStatus struct {
	GoalID       string              `json:"goal_id"`
	GoalName     string              `json:"goal_name"`
	VersionID    string              `json:"goal_version_id,omitempty"`
	Version      int                 `json:"version,omitempty"`
	Applicable   bool                `json:"applicable"`
	Status       models.Status       `json:"status"`
	Progress     float64             `json:"progress"`
	Target       float64             `json:"target"`
	Samples      int                 `json:"samples"`
	WindowDays   int                 `json:"window_days"`
	TargetWindow models.TargetWindow `json:"target_window,omitempty"`
	ScoringMode  models.ScoringMode  `json:"scoring_mode,omitempty"`
}

// ScoreDay produces one GoalStatus per active goal in the snapshot for the
// given date. Goals with no version in effect on the date are emitted
// flagged not-applicable rather than omitted, so callers see every goal they
// asked about.
func ScoreDay(snap Snapshot, date string) ([]GoalStatus, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, err
	}
	idx, err := buildIndex(snap)
	if err != nil {
		return nil, err
	}

	statuses := make([]GoalStatus, 0, len(snap.Goals))
	for i := range snap.Goals {
		goal := &snap.Goals[i]
		if !goal.Active {
			continue
		}
		versions := snap.Versions[goal.ID]
		if err := ValidateHistory(goal.ID, versions); err != nil {
			return nil, err
		}
		statuses = append(statuses, scoreGoalAt(idx, goal, versions, day, date))
	}
	return statuses, nil
}

// scoreGoalAt runs the resolve -> applicability -> aggregate -> classify
// pipeline for one goal on one date.
func scoreGoalAt(idx *index, goal *models.Goal, versions []models.GoalVersion, day time.Time, date string) GoalStatus {
	status := GoalStatus{
		GoalID:   goal.ID,
		GoalName: goal.Name,
		Status:   models.StatusNA,
	}

	version := ResolveVersion(versions, date)
	if version == nil {
		return status
	}
	status.VersionID = version.ID
	status.Version = version.Version
	status.Target = version.TargetCount
	status.TargetWindow = version.TargetWindow
	status.ScoringMode = version.ScoringMode

	status.Applicable = applicable(version, idx.conditionsByDate[date])
	if !status.Applicable {
		return status
	}

	status.Progress, status.Samples, status.WindowDays = aggregate(idx, version, day)
	status.Status = classify(true, version.ScoringMode, status.Progress, version.TargetCount, status.Samples)
	return status
}

// Summary is a met-vs-applicable rollup over a set of statuses; a calendar
// cell is exactly this, computed from the same per-day scoring as everything
// else rather than a separate formula.
type Summary struct {
	ApplicableGoals int     `json:"applicable_goals"`
	MetGoals        int     `json:"met_goals"`
	CompletionRatio float64 `json:"completion_ratio"`
}

// SummarizeStatuses counts applicable and met goals. An empty applicable set
// yields a zero ratio.
func SummarizeStatuses(statuses []GoalStatus) Summary {
	summary := Summary{}
	for i := range statuses {
		if statuses[i].Applicable {
			summary.ApplicableGoals++
		}
		if statuses[i].Status == models.StatusMet {
			summary.MetGoals++
		}
	}
	if summary.ApplicableGoals > 0 {
		summary.CompletionRatio = float64(summary.MetGoals) / float64(summary.ApplicableGoals)
	}
	return summary
}

// DaySummary is one calendar-day rollup.
type DaySummary struct {
	Date string `json:"date"`
	Summary
}

// PeriodSummary is one week or month rollup, evaluated at the period's last
// in-range day using the same per-day scoring as day cells.
type PeriodSummary struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Summary
}

// Calendar is the scored view of an inclusive date range.
type Calendar struct {
	Days   []DaySummary    `json:"days"`
	Weeks  []PeriodSummary `json:"weeks"`
	Months []PeriodSummary `json:"months"`
}

// ScoreCalendarRange scores every day in [start, end]. Day cells summarize
// day-window goals for that date; week and month cells summarize week- and
// month-window goals evaluated at the period end (clamped to the range end,
// since the snapshot only covers the requested range).
func ScoreCalendarRange(snap Snapshot, start, end string) (*Calendar, error) {
	startDay, err := utils.ParseDate(start)
	if err != nil {
		return nil, err
	}
	endDay, err := utils.ParseDate(end)
	if err != nil {
		return nil, err
	}
	if startDay.After(endDay) {
		return nil, fmt.Errorf("start %s must not be after end %s", start, end)
	}

	cal := &Calendar{}
	weekStarts := make(map[string]time.Time)
	monthStarts := make(map[string]time.Time)

	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		date := utils.FormatDate(d)
		statuses, err := ScoreDay(snap, date)
		if err != nil {
			return nil, err
		}
		cal.Days = append(cal.Days, DaySummary{
			Date:    date,
			Summary: SummarizeStatuses(filterByWindow(statuses, models.WindowDay)),
		})

		ws := utils.WeekStart(d)
		weekStarts[utils.FormatDate(ws)] = ws
		ms, _ := utils.MonthBounds(d)
		monthStarts[utils.FormatDate(ms)] = ms
	}

	appendPeriod := func(start time.Time, end time.Time, window models.TargetWindow, out *[]PeriodSummary) error {
		at := utils.MinDate(end, endDay)
		statuses, err := ScoreDay(snap, utils.FormatDate(at))
		if err != nil {
			return err
		}
		*out = append(*out, PeriodSummary{
			Start:   utils.FormatDate(start),
			End:     utils.FormatDate(end),
			Summary: SummarizeStatuses(filterByWindow(statuses, window)),
		})
		return nil
	}

	for _, ws := range sortedDates(weekStarts) {
		if err := appendPeriod(ws, ws.AddDate(0, 0, 6), models.WindowWeek, &cal.Weeks); err != nil {
			return nil, err
		}
	}
	for _, ms := range sortedDates(monthStarts) {
		_, me := utils.MonthBounds(ms)
		if err := appendPeriod(ms, me, models.WindowMonth, &cal.Months); err != nil {
			return nil, err
		}
	}
	return cal, nil
}

func filterByWindow(statuses []GoalStatus, window models.TargetWindow) []GoalStatus {
	filtered := make([]GoalStatus, 0, len(statuses))
	for i := range statuses {
		if statuses[i].TargetWindow == window {
			filtered = append(filtered, statuses[i])
		}
	}
	return filtered
}

func sortedDates(byKey map[string]time.Time) []time.Time {
	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	// Date strings sort chronologically.
	sort.Strings(keys)
	dates := make([]time.Time, 0, len(keys))
	for _, key := range keys {
		dates = append(dates, byKey[key])
	}
	return dates
}
