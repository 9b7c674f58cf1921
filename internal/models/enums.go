package models

// TargetWindow is the granularity over which goal progress accumulates.
// Week and month windows are cumulative-to-date, not full calendar periods.
type TargetWindow string

const (
	WindowDay   TargetWindow = "day"
	WindowWeek  TargetWindow = "week"
	WindowMonth TargetWindow = "month"
)

func (w TargetWindow) Valid() bool {
	switch w {
	case WindowDay, WindowWeek, WindowMonth:
		return true
	}
	return false
}

// ScoringMode determines how logged activity turns into a progress value.
type ScoringMode string

const (
	// ModeCount sums weighted tag-event counts against a numeric target.
	ModeCount ScoringMode = "count"
	// ModeBinary is count scoring against a done/not-done style target.
	ModeBinary ScoringMode = "binary"
	// ModeRating averages recorded 1-100 day ratings against a threshold.
	ModeRating ScoringMode = "rating"
)

func (m ScoringMode) Valid() bool {
	switch m {
	case ModeCount, ModeBinary, ModeRating:
		return true
	}
	return false
}

// Status classifies a goal's progress on a date.
type Status string

const (
	StatusMet     Status = "met"
	StatusPartial Status = "partial"
	StatusMissed  Status = "missed"
	StatusNA      Status = "na"
)

// TrendBucket is the sampling unit of a trend series. It is distinct from a
// goal's own target window: the bucket decides where points are sampled, the
// window decides how much history each point aggregates.
type TrendBucket string

const (
	BucketDay   TrendBucket = "day"
	BucketWeek  TrendBucket = "week"
	BucketMonth TrendBucket = "month"
)

func (b TrendBucket) Valid() bool {
	switch b {
	case BucketDay, BucketWeek, BucketMonth:
		return true
	}
	return false
}
