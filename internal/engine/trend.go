package engine

import (
	"fmt"
	"time"

	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/utils"
)

// TrendPoint is one sampled scoring record in a trend series. The version ID
// rides along so consumers can mark discontinuities where a goal's
// definition changed mid-range.
type TrendPoint struct {
	Date         string              `json:"date"`
	PeriodStart  string              `json:"period_start"`
	PeriodEnd    string              `json:"period_end"`
	VersionID    string              `json:"goal_version_id,omitempty"`
	Version      int                 `json:"version,omitempty"`
	Applicable   bool                `json:"applicable"`
	Status       models.Status       `json:"status"`
	Progress     float64             `json:"progress"`
	Target       float64             `json:"target"`
	Ratio        float64             `json:"ratio"`
	Samples      int                 `json:"samples"`
	WindowDays   int                 `json:"window_days"`
	TargetWindow models.TargetWindow `json:"target_window,omitempty"`
	ScoringMode  models.ScoringMode  `json:"scoring_mode,omitempty"`
}

// TrendSeries is one goal's chronological trend over a bucketed date range.
type TrendSeries struct {
	GoalID   string             `json:"goal_id"`
	GoalName string             `json:"goal_name"`
	Bucket   models.TrendBucket `json:"bucket"`
	Points   []TrendPoint       `json:"points"`
}

// bucketPoint is one sampling position: the date scored plus the full period
// it stands for.
type bucketPoint struct {
	date        time.Time
	periodStart time.Time
	periodEnd   time.Time
}

// bucketPoints lays out the sampling grid over [start, end]. Day buckets
// sample every date; week buckets sample at each Monday-aligned week's last
// in-range day; month buckets likewise at each month's last in-range day.
func bucketPoints(start, end time.Time, bucket models.TrendBucket) []bucketPoint {
	var points []bucketPoint
	switch bucket {
	case models.BucketWeek:
		for ws := utils.WeekStart(start); !ws.After(end); ws = ws.AddDate(0, 0, 7) {
			we := ws.AddDate(0, 0, 6)
			points = append(points, bucketPoint{
				date:        utils.MinDate(we, end),
				periodStart: ws,
				periodEnd:   we,
			})
		}
	case models.BucketMonth:
		ms, _ := utils.MonthBounds(start)
		for ; !ms.After(end); ms = ms.AddDate(0, 1, 0) {
			_, me := utils.MonthBounds(ms)
			points = append(points, bucketPoint{
				date:        utils.MinDate(me, end),
				periodStart: ms,
				periodEnd:   me,
			})
		}
	default:
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			points = append(points, bucketPoint{date: d, periodStart: d, periodEnd: d})
		}
	}
	return points
}

// BuildTrend computes one TrendSeries per requested goal over the inclusive
// date range. Each point scores the goal at the point's date using the
// goal's own target window; the bucket only controls where points are
// sampled. A start after end is normalized by swapping. Requesting a goal
// the snapshot does not contain is an input error.
func BuildTrend(snap Snapshot, goalIDs []string, start, end string, bucket models.TrendBucket) ([]TrendSeries, error) {
	if !bucket.Valid() {
		return nil, fmt.Errorf("invalid trend bucket %q", bucket)
	}
	startDay, err := utils.ParseDate(start)
	if err != nil {
		return nil, err
	}
	endDay, err := utils.ParseDate(end)
	if err != nil {
		return nil, err
	}
	if startDay.After(endDay) {
		startDay, endDay = endDay, startDay
	}

	idx, err := buildIndex(snap)
	if err != nil {
		return nil, err
	}

	goalsByID := make(map[string]*models.Goal, len(snap.Goals))
	for i := range snap.Goals {
		goalsByID[snap.Goals[i].ID] = &snap.Goals[i]
	}

	points := bucketPoints(startDay, endDay, bucket)
	series := make([]TrendSeries, 0, len(goalIDs))
	for _, goalID := range goalIDs {
		goal, ok := goalsByID[goalID]
		if !ok {
			return nil, fmt.Errorf("goal %s not in snapshot", goalID)
		}
		versions := snap.Versions[goalID]
		if err := ValidateHistory(goalID, versions); err != nil {
			return nil, err
		}

		entry := TrendSeries{GoalID: goalID, GoalName: goal.Name, Bucket: bucket}
		for _, point := range points {
			date := utils.FormatDate(point.date)
			status := scoreGoalAt(idx, goal, versions, point.date, date)
			ratio := 0.0
			if status.Target > 0 {
				ratio = status.Progress / status.Target
			}
			entry.Points = append(entry.Points, TrendPoint{
				Date:         date,
				PeriodStart:  utils.FormatDate(point.periodStart),
				PeriodEnd:    utils.FormatDate(point.periodEnd),
				VersionID:    status.VersionID,
				Version:      status.Version,
				Applicable:   status.Applicable,
				Status:       status.Status,
				Progress:     status.Progress,
				Target:       status.Target,
				Ratio:        ratio,
				Samples:      status.Samples,
				WindowDays:   status.WindowDays,
				TargetWindow: status.TargetWindow,
				ScoringMode:  status.ScoringMode,
			})
		}
		series = append(series, entry)
	}
	return series, nil
}
