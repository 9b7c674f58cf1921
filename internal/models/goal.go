package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
)

// Goal is a personally defined objective. Its scoring configuration lives in
// an append-only version history, not on the goal itself, so historical
// scores stay reproducible after edits.
type Goal struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
}

func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("goal name cannot be empty")
	}
	return nil
}

// GoalVersion is one immutable snapshot of a goal's scoring configuration.
// The version effective on date D is the latest one with EffectiveFrom <= D;
// versions form closed-open intervals and never overlap.
type GoalVersion struct {
	ID            string          `json:"id"`
	GoalID        string          `json:"goal_id"`
	Version       int             `json:"version"`
	EffectiveFrom string          `json:"effective_from"` // YYYY-MM-DD
	TargetWindow  TargetWindow    `json:"target_window"`
	TargetCount   float64         `json:"target_count"`
	ScoringMode   ScoringMode     `json:"scoring_mode"`
	TagWeights    map[string]float64 `json:"tag_weights,omitempty"` // tag ID -> positive weight
	Conditions    map[string]bool `json:"conditions,omitempty"`    // condition ID -> required value
	CreatedAt     time.Time       `json:"created_at"`
}

func (v *GoalVersion) Validate() error {
	if v.GoalID == "" {
		return fmt.Errorf("goal version must reference a goal")
	}
	if _, err := time.Parse(constants.DateFormat, v.EffectiveFrom); err != nil {
		return fmt.Errorf("invalid effective-from date %q (expected YYYY-MM-DD): %w", v.EffectiveFrom, err)
	}
	if !v.TargetWindow.Valid() {
		return fmt.Errorf("invalid target window %q", v.TargetWindow)
	}
	if !v.ScoringMode.Valid() {
		return fmt.Errorf("invalid scoring mode %q", v.ScoringMode)
	}
	if v.TargetCount <= 0 {
		return fmt.Errorf("target count must be positive, got %v", v.TargetCount)
	}
	if v.ScoringMode == ModeRating && (v.TargetCount < 1 || v.TargetCount > 100) {
		return fmt.Errorf("rating goals require a target between 1 and 100, got %v", v.TargetCount)
	}
	for tagID, weight := range v.TagWeights {
		if weight <= 0 {
			return fmt.Errorf("tag %s has non-positive weight %v", tagID, weight)
		}
	}
	return nil
}
