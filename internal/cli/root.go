package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/goaltrack/internal/backup"
	"github.com/julianstephens/goaltrack/internal/engine"
	"github.com/julianstephens/goaltrack/internal/logger"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/storage"
	"github.com/julianstephens/goaltrack/internal/utils"
)

type Context struct {
	Store    storage.Provider
	Timezone string
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveDate normalizes a --date flag value. An empty value means today in
// the configured timezone.
func (c *Context) ResolveDate(date string) (string, error) {
	if date == "" {
		return utils.TodayInTimezone(c.Timezone)
	}
	if _, err := utils.ParseDate(date); err != nil {
		return "", err
	}
	return date, nil
}

// LoadDaySnapshot loads the snapshot needed to score a single date. Week and
// month windows accumulate from their period start, so the range reaches
// back to whichever of the two starts earlier.
func (c *Context) LoadDaySnapshot(date string) (engine.Snapshot, error) {
	start, err := ScoringRangeStart(date)
	if err != nil {
		return engine.Snapshot{}, err
	}
	return c.Store.LoadSnapshot(start, date)
}

// LoadRangeSnapshot loads the snapshot for scoring every date in
// [start, end], including the window lookback before start.
func (c *Context) LoadRangeSnapshot(start, end string) (engine.Snapshot, error) {
	lookback, err := ScoringRangeStart(start)
	if err != nil {
		return engine.Snapshot{}, err
	}
	if _, err := utils.ParseDate(end); err != nil {
		return engine.Snapshot{}, err
	}
	return c.Store.LoadSnapshot(lookback, end)
}

// ScoringRangeStart returns the earliest date whose day log can influence
// scoring on the given date: the earlier of its week start and month start.
func ScoringRangeStart(date string) (string, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return "", err
	}
	weekStart := utils.WeekStart(day)
	monthStart, _ := utils.MonthBounds(day)
	return utils.FormatDate(utils.MinDate(weekStart, monthStart)), nil
}

// ParseWindow parses a target window flag value.
func ParseWindow(s string) (models.TargetWindow, error) {
	w := models.TargetWindow(strings.ToLower(strings.TrimSpace(s)))
	if !w.Valid() {
		return "", fmt.Errorf("invalid target window %q (expected day|week|month)", s)
	}
	return w, nil
}

// ParseMode parses a scoring mode flag value.
func ParseMode(s string) (models.ScoringMode, error) {
	m := models.ScoringMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("invalid scoring mode %q (expected count|binary|rating)", s)
	}
	return m, nil
}

// ParseBucket parses a trend bucket flag value.
func ParseBucket(s string) (models.TrendBucket, error) {
	b := models.TrendBucket(strings.ToLower(strings.TrimSpace(s)))
	if !b.Valid() {
		return "", fmt.Errorf("invalid bucket %q (expected day|week|month)", s)
	}
	return b, nil
}

// ParseTagWeights parses a "name=weight,name=weight" flag into a name-keyed
// weight map. A bare name gets weight 1.
func ParseTagWeights(s string) (map[string]float64, error) {
	weights := make(map[string]float64)
	if strings.TrimSpace(s) == "" {
		return weights, nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name := part
		weight := 1.0
		if idx := strings.Index(part, "="); idx != -1 {
			name = strings.TrimSpace(part[:idx])
			w, err := strconv.ParseFloat(strings.TrimSpace(part[idx+1:]), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid weight in %q: %w", part, err)
			}
			weight = w
		}
		if name == "" {
			return nil, fmt.Errorf("empty tag name in weights %q", s)
		}
		if weight <= 0 {
			return nil, fmt.Errorf("weight for tag %q must be positive, got %v", name, weight)
		}
		weights[name] = weight
	}
	return weights, nil
}

// ParseNameList splits a comma-separated list of names, dropping blanks.
func ParseNameList(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// StatusGlyph maps a scoring status to its one-character display form.
func StatusGlyph(status models.Status) string {
	switch status {
	case models.StatusMet:
		return "✓"
	case models.StatusPartial:
		return "◐"
	case models.StatusMissed:
		return "✗"
	case models.StatusNA:
		return "-"
	default:
		return "?"
	}
}

// FormatWindowLabel renders a target window as its in-sentence phrase.
func FormatWindowLabel(window models.TargetWindow) string {
	switch window {
	case models.WindowDay:
		return "today"
	case models.WindowWeek:
		return "this week"
	case models.WindowMonth:
		return "this month"
	default:
		return string(window)
	}
}

// FormatProgress renders the progress portion of a goal status line.
func FormatProgress(status engine.GoalStatus) string {
	if !status.Applicable {
		return "n/a"
	}
	if status.ScoringMode == models.ModeRating {
		if status.Samples == 0 {
			return fmt.Sprintf("no ratings yet (target avg %s)", formatNumber(status.Target))
		}
		return fmt.Sprintf("avg %.1f/%s (%d/%d rated)",
			status.Progress, formatNumber(status.Target), status.Samples, status.WindowDays)
	}
	return fmt.Sprintf("%s/%s %s",
		formatNumber(status.Progress), formatNumber(status.Target), FormatWindowLabel(status.TargetWindow))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
