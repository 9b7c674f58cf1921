package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/utils"
)

// Alert kinds used in notification dedupe keys.
const (
	AlertKindPace    = "pace"
	AlertKindAvgDrop = "avg_drop"
)

// AlertConfig tunes the trend alert conditions.
type AlertConfig struct {
	// AvgDropThreshold is the relative decline of the trailing rating mean
	// against the prior mean that triggers a drop alert (0.20 = 20%).
	AvgDropThreshold float64
	// AvgDropWindow is the size in days of the trailing and prior windows.
	AvgDropWindow int
}

// DefaultAlertConfig returns the standard alert tuning.
func DefaultAlertConfig() AlertConfig {
	return AlertConfig{AvgDropThreshold: 0.20, AvgDropWindow: 7}
}

// GenerateAlerts inspects one goal's recent day-bucketed trend and returns
// candidate notifications. The two conditions are evaluated independently
// and may both fire. Generation is stateless and idempotent: the dedupe key
// trend:<kind>:<goal>:<date> is deterministic, and the notification store
// drops duplicates on insert.
func GenerateAlerts(series TrendSeries, cfg AlertConfig) []models.Notification {
	var alerts []models.Notification
	if alert := paceAlert(series); alert != nil {
		alerts = append(alerts, *alert)
	}
	if alert := avgDropAlert(series, cfg); alert != nil {
		alerts = append(alerts, *alert)
	}
	return alerts
}

// paceAlert fires for count-mode goals with week or month windows when
// progress to date, linearly extrapolated over the elapsed fraction of the
// window, will not reach the target.
func paceAlert(series TrendSeries) *models.Notification {
	if len(series.Points) == 0 {
		return nil
	}
	point := &series.Points[len(series.Points)-1]
	if point.ScoringMode == models.ModeRating || !point.Applicable || point.Target <= 0 {
		return nil
	}
	if point.TargetWindow != models.WindowWeek && point.TargetWindow != models.WindowMonth {
		return nil
	}

	day, err := utils.ParseDate(point.Date)
	if err != nil || point.WindowDays <= 0 {
		return nil
	}
	fullDays := 7
	if point.TargetWindow == models.WindowMonth {
		start, end := utils.MonthBounds(day)
		fullDays = utils.DaysBetween(start, end)
	}
	elapsed := float64(point.WindowDays) / float64(fullDays)
	if elapsed <= 0 {
		return nil
	}
	pace := (point.Progress / point.Target) / elapsed
	if pace >= 1.0 {
		return nil
	}

	return &models.Notification{
		CreatedAt: time.Now(),
		Type:      models.NotificationTrend,
		Title:     "Pace alert",
		Body: fmt.Sprintf("%s is behind pace: %.1f of %.0f with %d of %d %s days elapsed.",
			series.GoalName, point.Progress, point.Target, point.WindowDays, fullDays, point.TargetWindow),
		DedupeKey: fmt.Sprintf("trend:%s:%s:%s", AlertKindPace, series.GoalID, point.Date),
	}
}

// avgDropAlert fires for rating-mode goals when the trailing window's mean
// rating falls a configured fraction below the prior window's mean. Both
// windows need at least one rated day; sparse history produces no alert
// rather than a spurious one.
func avgDropAlert(series TrendSeries, cfg AlertConfig) *models.Notification {
	if len(series.Points) == 0 || cfg.AvgDropWindow < 1 {
		return nil
	}
	last := &series.Points[len(series.Points)-1]
	if last.ScoringMode != models.ModeRating {
		return nil
	}

	// Day-window rating points carry the day's rating as progress with
	// samples 1 when rated; wider windows carry a running mean. Either way
	// the per-point means are comparable within the series.
	trailing, trailingN := windowMean(series.Points, len(series.Points)-cfg.AvgDropWindow, len(series.Points))
	prior, priorN := windowMean(series.Points, len(series.Points)-2*cfg.AvgDropWindow, len(series.Points)-cfg.AvgDropWindow)
	if trailingN == 0 || priorN == 0 || prior <= 0 {
		return nil
	}
	if trailing >= prior*(1-cfg.AvgDropThreshold) {
		return nil
	}

	return &models.Notification{
		CreatedAt: time.Now(),
		Type:      models.NotificationTrend,
		Title:     "Rating drop",
		Body: fmt.Sprintf("%s average rating dropped to %.1f from %.1f over the last %d days.",
			series.GoalName, trailing, prior, cfg.AvgDropWindow),
		DedupeKey: fmt.Sprintf("trend:%s:%s:%s", AlertKindAvgDrop, series.GoalID, last.Date),
	}
}

// windowMean averages progress over points[from:to] that have at least one
// sample. Out-of-range bounds are clamped.
func windowMean(points []TrendPoint, from, to int) (float64, int) {
	if from < 0 {
		from = 0
	}
	if to > len(points) {
		to = len(points)
	}
	sum, n := 0.0, 0
	for i := from; i < to; i++ {
		if points[i].Samples > 0 {
			sum += points[i].Progress
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

// BuildReminder turns a day's statuses into a check-in notification listing
// the applicable goals that are not yet met, or nil when everything is done.
// The dedupe key reminder:<date> keeps repeated reminder runs from stacking
// notifications for the same day.
func BuildReminder(statuses []GoalStatus, date string) *models.Notification {
	var incomplete []GoalStatus
	for i := range statuses {
		if statuses[i].Applicable && statuses[i].Status != models.StatusMet {
			incomplete = append(incomplete, statuses[i])
		}
	}
	if len(incomplete) == 0 {
		return nil
	}

	sort.Slice(incomplete, func(i, j int) bool {
		return strings.ToLower(incomplete[i].GoalName) < strings.ToLower(incomplete[j].GoalName)
	})

	names := make([]string, 0, len(incomplete))
	for i := range incomplete {
		status := &incomplete[i]
		if status.ScoringMode == models.ModeRating {
			cmp := "<"
			if status.Progress >= status.Target {
				cmp = ">="
			}
			names = append(names, fmt.Sprintf("%s (avg %.1f %s %.0f, %d/%d rated)",
				status.GoalName, status.Progress, cmp, status.Target, status.Samples, status.WindowDays))
		} else {
			names = append(names, status.GoalName)
		}
	}

	return &models.Notification{
		CreatedAt: time.Now(),
		Type:      models.NotificationReminder,
		Title:     "Goal check-in",
		Body:      "Incomplete goals today: " + strings.Join(names, ", ") + ".",
		DedupeKey: "reminder:" + date,
	}
}
