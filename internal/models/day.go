package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
)

// TagEvent is one logged occurrence of a tag on a date. Multiple events per
// tag per day are allowed and additive.
type TagEvent struct {
	ID    string     `json:"id"`
	Date  string     `json:"date"` // YYYY-MM-DD
	TagID string     `json:"tag_id"`
	Count int        `json:"count"`
	TS    *time.Time `json:"ts,omitempty"`
	Note  string     `json:"note,omitempty"`
}

func (e *TagEvent) Validate() error {
	if _, err := time.Parse(constants.DateFormat, e.Date); err != nil {
		return fmt.Errorf("invalid event date %q (expected YYYY-MM-DD): %w", e.Date, err)
	}
	if e.TagID == "" {
		return fmt.Errorf("event must reference a tag")
	}
	if e.Count < 1 {
		return fmt.Errorf("event count must be at least 1, got %d", e.Count)
	}
	return nil
}

// DayCondition records a boolean condition value for one date. Absence of a
// record means "unknown", which blocks any goal requiring that condition.
type DayCondition struct {
	Date        string `json:"date"` // YYYY-MM-DD
	ConditionID string `json:"condition_id"`
	Value       bool   `json:"value"`
}

// GoalRating is a 1-100 self-assessment of a goal for one date. At most one
// per (date, goal), upsertable.
type GoalRating struct {
	Date   string `json:"date"` // YYYY-MM-DD
	GoalID string `json:"goal_id"`
	Rating int    `json:"rating"`
	Note   string `json:"note,omitempty"`
}

func (r *GoalRating) Validate() error {
	if _, err := time.Parse(constants.DateFormat, r.Date); err != nil {
		return fmt.Errorf("invalid rating date %q (expected YYYY-MM-DD): %w", r.Date, err)
	}
	if r.GoalID == "" {
		return fmt.Errorf("rating must reference a goal")
	}
	if r.Rating < 1 || r.Rating > 100 {
		return fmt.Errorf("rating for goal %s on %s must be between 1 and 100, got %d", r.GoalID, r.Date, r.Rating)
	}
	return nil
}

// DayEntry is a free-text journal note for a date. It is consumed by review
// output, never scored.
type DayEntry struct {
	Date      string    `json:"date"` // YYYY-MM-DD
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
