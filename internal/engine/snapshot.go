// Package engine computes goal statuses, trend series, correlations, and
// trend alerts from an explicit snapshot of logged data. Every entry point is
// a pure function of its inputs: nothing is cached or retained between calls,
// so results always reflect the snapshot handed in and independent calls may
// run concurrently.
package engine

import (
	"fmt"

	"github.com/julianstephens/goaltrack/internal/models"
)

// Snapshot is the full input to a scoring run: the goals under consideration,
// their version histories, and the raw event/condition/rating log covering
// the date range being scored. The storage layer builds one inside a single
// transaction so the engine never sees a torn read.
type Snapshot struct {
	Goals      []models.Goal
	Tags       []models.Tag
	Versions   map[string][]models.GoalVersion // goal ID -> versions ordered by effective-from
	Events     []models.TagEvent
	Conditions []models.DayCondition
	Ratings    []models.GoalRating
}

// index holds per-date lookups derived from a snapshot. Rebuilt on every
// entry point; cheap relative to the windows being scored.
type index struct {
	eventsByTagDate   map[string]map[string]int // tag ID -> date -> summed count
	conditionsByDate  map[string]map[string]bool
	ratingsByGoalDate map[string]map[string]int
}

func buildIndex(snap Snapshot) (*index, error) {
	idx := &index{
		eventsByTagDate:   make(map[string]map[string]int),
		conditionsByDate:  make(map[string]map[string]bool),
		ratingsByGoalDate: make(map[string]map[string]int),
	}

	for i := range snap.Events {
		event := &snap.Events[i]
		if err := event.Validate(); err != nil {
			return nil, fmt.Errorf("invalid tag event %s: %w", event.ID, err)
		}
		byDate := idx.eventsByTagDate[event.TagID]
		if byDate == nil {
			byDate = make(map[string]int)
			idx.eventsByTagDate[event.TagID] = byDate
		}
		byDate[event.Date] += event.Count
	}

	for _, dc := range snap.Conditions {
		byID := idx.conditionsByDate[dc.Date]
		if byID == nil {
			byID = make(map[string]bool)
			idx.conditionsByDate[dc.Date] = byID
		}
		byID[dc.ConditionID] = dc.Value
	}

	for i := range snap.Ratings {
		rating := &snap.Ratings[i]
		if err := rating.Validate(); err != nil {
			return nil, err
		}
		byDate := idx.ratingsByGoalDate[rating.GoalID]
		if byDate == nil {
			byDate = make(map[string]int)
			idx.ratingsByGoalDate[rating.GoalID] = byDate
		}
		byDate[rating.Date] = rating.Rating
	}

	return idx, nil
}
