package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/goaltrack/internal/models"
)

func testVersion(goalID string, version int, effectiveFrom string) models.GoalVersion {
	return models.GoalVersion{
		ID: goalID + "-v" + effectiveFrom, GoalID: goalID, Version: version,
		EffectiveFrom: effectiveFrom, TargetWindow: models.WindowDay,
		TargetCount: 1, ScoringMode: models.ModeCount,
		TagWeights: map[string]float64{"t1": 1},
	}
}

func TestValidateGoalsClean(t *testing.T) {
	v := New()
	goals := []models.Goal{{ID: "g1", Name: "Run", Active: true}}
	versions := map[string][]models.GoalVersion{
		"g1": {testVersion("g1", 1, "2026-01-01"), testVersion("g1", 2, "2026-01-10")},
	}
	tags := []models.Tag{{ID: "t1", Name: "run", Active: true}}

	result := v.ValidateGoals(goals, versions, tags, nil)
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected clean report: %s", result.FormatReport())
	}
}

func TestValidateGoalsDuplicateNames(t *testing.T) {
	v := New()
	goals := []models.Goal{
		{ID: "g1", Name: "Run", Active: true},
		{ID: "g2", Name: "Run", Active: true},
		{ID: "g3", Name: "Run", Active: false}, // inactive duplicates are fine
	}
	versions := map[string][]models.GoalVersion{
		"g1": {testVersion("g1", 1, "2026-01-01")},
		"g2": {testVersion("g2", 1, "2026-01-01")},
	}
	tags := []models.Tag{{ID: "t1", Name: "run", Active: true}}

	result := v.ValidateGoals(goals, versions, tags, nil)
	dupes := conflictsOfType(result, ConflictDuplicateGoalName)
	if len(dupes) != 1 {
		t.Fatalf("expected 1 duplicate conflict, got %d: %s", len(dupes), result.FormatReport())
	}
	if len(dupes[0].GoalIDs) != 2 {
		t.Errorf("expected 2 goal IDs in conflict, got %v", dupes[0].GoalIDs)
	}
}

func TestValidateGoalsMissingVersions(t *testing.T) {
	v := New()
	goals := []models.Goal{{ID: "g1", Name: "Run", Active: true}}

	result := v.ValidateGoals(goals, map[string][]models.GoalVersion{}, nil, nil)
	if len(conflictsOfType(result, ConflictMissingVersions)) != 1 {
		t.Errorf("expected missing-versions conflict, got: %s", result.FormatReport())
	}
}

func TestValidateGoalsVersionOrder(t *testing.T) {
	v := New()
	goals := []models.Goal{{ID: "g1", Name: "Run", Active: true}}
	versions := map[string][]models.GoalVersion{
		"g1": {testVersion("g1", 1, "2026-01-10"), testVersion("g1", 2, "2026-01-01")},
	}
	tags := []models.Tag{{ID: "t1", Name: "run", Active: true}}

	result := v.ValidateGoals(goals, versions, tags, nil)
	if len(conflictsOfType(result, ConflictVersionOrder)) != 1 {
		t.Errorf("expected version-order conflict, got: %s", result.FormatReport())
	}
}

func TestValidateGoalsDanglingReferences(t *testing.T) {
	v := New()
	goals := []models.Goal{{ID: "g1", Name: "Gym", Active: true}}
	version := testVersion("g1", 1, "2026-01-01")
	version.Conditions = map[string]bool{"c-missing": true}
	versions := map[string][]models.GoalVersion{"g1": {version}}

	// Neither the tag t1 nor the condition exists.
	result := v.ValidateGoals(goals, versions, nil, nil)
	if len(conflictsOfType(result, ConflictUnknownTag)) != 1 {
		t.Errorf("expected unknown-tag conflict, got: %s", result.FormatReport())
	}
	if len(conflictsOfType(result, ConflictUnknownCondition)) != 1 {
		t.Errorf("expected unknown-condition conflict, got: %s", result.FormatReport())
	}
}

func TestValidateTags(t *testing.T) {
	v := New()
	tags := []models.Tag{
		{ID: "t1", Name: "run", Active: true},
		{ID: "t2", Name: "run", Active: true},
		{ID: "t3", Name: "walk", Active: true},
	}
	result := v.ValidateTags(tags)
	if len(conflictsOfType(result, ConflictDuplicateTagName)) != 1 {
		t.Errorf("expected duplicate tag conflict, got: %s", result.FormatReport())
	}
}

func TestValidateDayLog(t *testing.T) {
	v := New()
	tags := []models.Tag{{ID: "t1", Name: "run", Active: true}}
	conditions := []models.Condition{{ID: "c1", Name: "at home", Active: true}}
	goals := []models.Goal{{ID: "g1", Name: "Sleep", Active: true}}

	events := []models.TagEvent{
		{ID: "e1", Date: "2026-01-05", TagID: "t1", Count: 1},
		{ID: "e2", Date: "bad-date", TagID: "t1", Count: 1},
		{ID: "e3", Date: "2026-01-05", TagID: "t-gone", Count: 1},
	}
	dayConditions := []models.DayCondition{
		{Date: "2026-01-05", ConditionID: "c1", Value: true},
		{Date: "2026-01-05", ConditionID: "c-gone", Value: false},
	}
	ratings := []models.GoalRating{
		{Date: "2026-01-05", GoalID: "g1", Rating: 70},
		{Date: "2026-01-05", GoalID: "g1", Rating: 120},
	}

	result := v.ValidateDayLog(events, dayConditions, ratings, tags, conditions, goals)
	if len(conflictsOfType(result, ConflictInvalidDate)) != 1 {
		t.Errorf("expected 1 invalid-date conflict, got: %s", result.FormatReport())
	}
	if len(conflictsOfType(result, ConflictUnknownTag)) != 1 {
		t.Errorf("expected 1 unknown-tag conflict, got: %s", result.FormatReport())
	}
	if len(conflictsOfType(result, ConflictUnknownCondition)) != 1 {
		t.Errorf("expected 1 unknown-condition conflict, got: %s", result.FormatReport())
	}
	if len(conflictsOfType(result, ConflictRatingOutOfRange)) != 1 {
		t.Errorf("expected 1 rating conflict, got: %s", result.FormatReport())
	}
}

func TestAutoFixDuplicateGoals(t *testing.T) {
	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	goals := []models.Goal{
		{ID: "g-b", Name: "Run", Active: true, CreatedAt: old},
		{ID: "g-a", Name: "Run", Active: true, CreatedAt: newer},
	}
	conflicts := []Conflict{{
		Type:    ConflictDuplicateGoalName,
		GoalIDs: []string{"g-b", "g-a"},
		Items:   []string{"Run"},
	}}

	var archived []string
	actions := AutoFixDuplicateGoals(conflicts, goals, func(id string) error {
		archived = append(archived, id)
		return nil
	})
	if len(actions) != 1 {
		t.Fatalf("expected 1 fix action, got %d", len(actions))
	}
	// The older goal survives regardless of ID ordering.
	if len(archived) != 1 || archived[0] != "g-a" {
		t.Errorf("expected newer duplicate archived, got %v", archived)
	}
}

func TestAutoFixDuplicateGoalsArchiveFailure(t *testing.T) {
	goals := []models.Goal{
		{ID: "g1", Name: "Run", Active: true},
		{ID: "g2", Name: "Run", Active: true},
	}
	conflicts := []Conflict{{Type: ConflictDuplicateGoalName, GoalIDs: []string{"g1", "g2"}}}

	actions := AutoFixDuplicateGoals(conflicts, goals, func(id string) error {
		return errors.New("store unavailable")
	})
	if len(actions) != 1 {
		t.Fatalf("expected a failure action, got %d", len(actions))
	}
}

func conflictsOfType(result ValidationResult, conflictType ConflictType) []Conflict {
	var matched []Conflict
	for _, conflict := range result.Conflicts {
		if conflict.Type == conflictType {
			matched = append(matched, conflict)
		}
	}
	return matched
}
