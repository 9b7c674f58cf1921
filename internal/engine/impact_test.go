package engine

import (
	"testing"

	"github.com/julianstephens/goaltrack/internal/models"
)

func TestTagImpacts(t *testing.T) {
	snap := Snapshot{
		Goals: []models.Goal{
			{ID: "g1", Name: "Move", Active: true},
			{ID: "g2", Name: "Cardio", Active: true},
			{ID: "g3", Name: "Sleep quality", Active: true},
			{ID: "g4", Name: "Old habit", Active: false},
		},
		Tags: []models.Tag{
			{ID: "t-walk", Name: "walk", Active: true},
			{ID: "t-run", Name: "run", Active: true},
		},
		Versions: map[string][]models.GoalVersion{
			"g1": {{
				ID: "v1", GoalID: "g1", Version: 1, EffectiveFrom: "2026-01-01",
				TargetWindow: models.WindowWeek, TargetCount: 5, ScoringMode: models.ModeCount,
				TagWeights: map[string]float64{"t-walk": 1, "t-run": 2},
			}},
			"g2": {{
				ID: "v2", GoalID: "g2", Version: 1, EffectiveFrom: "2026-01-01",
				TargetWindow: models.WindowDay, TargetCount: 1, ScoringMode: models.ModeCount,
				TagWeights: map[string]float64{"t-run": 1},
			}},
			"g3": {{
				ID: "v3", GoalID: "g3", Version: 1, EffectiveFrom: "2026-01-01",
				TargetWindow: models.WindowWeek, TargetCount: 70, ScoringMode: models.ModeRating,
			}},
			"g4": {{
				ID: "v4", GoalID: "g4", Version: 1, EffectiveFrom: "2026-01-01",
				TargetWindow: models.WindowDay, TargetCount: 1, ScoringMode: models.ModeCount,
				TagWeights: map[string]float64{"t-walk": 1},
			}},
		},
	}

	impacts, err := TagImpacts(snap, "2026-01-05")
	if err != nil {
		t.Fatalf("TagImpacts failed: %v", err)
	}
	if len(impacts) != 2 {
		t.Fatalf("expected 2 impacted tags, got %d", len(impacts))
	}

	// Sorted by tag name: run before walk.
	run := impacts[0]
	if run.TagName != "run" {
		t.Fatalf("expected run first, got %s", run.TagName)
	}
	if len(run.Goals) != 2 {
		t.Fatalf("expected run to feed 2 goals, got %d", len(run.Goals))
	}
	// Goals sorted by name: Cardio before Move.
	if run.Goals[0].GoalName != "Cardio" || run.Goals[0].Weight != 1 {
		t.Errorf("unexpected first run goal %+v", run.Goals[0])
	}
	if run.Goals[1].GoalName != "Move" || run.Goals[1].Weight != 2 {
		t.Errorf("unexpected second run goal %+v", run.Goals[1])
	}

	// Rating and inactive goals never appear.
	walk := impacts[1]
	if len(walk.Goals) != 1 || walk.Goals[0].GoalID != "g1" {
		t.Errorf("expected walk to feed only the active count goal, got %+v", walk.Goals)
	}
}

func TestTagImpactsRespectsConditionsAndVersions(t *testing.T) {
	snap := Snapshot{
		Goals: []models.Goal{{ID: "g1", Name: "Gym", Active: true}},
		Tags:  []models.Tag{{ID: "t-gym", Name: "gym", Active: true}},
		Versions: map[string][]models.GoalVersion{
			"g1": {{
				ID: "v1", GoalID: "g1", Version: 1, EffectiveFrom: "2026-01-10",
				TargetWindow: models.WindowDay, TargetCount: 1, ScoringMode: models.ModeCount,
				TagWeights: map[string]float64{"t-gym": 1},
				Conditions: map[string]bool{"c-healthy": true},
			}},
		},
	}

	// Before the first version: no effective definition, no impact.
	impacts, err := TagImpacts(snap, "2026-01-05")
	if err != nil {
		t.Fatalf("TagImpacts failed: %v", err)
	}
	if len(impacts) != 0 {
		t.Errorf("expected no impacts before first version, got %d", len(impacts))
	}

	// Condition unrecorded: goal blocked, no impact.
	impacts, err = TagImpacts(snap, "2026-01-12")
	if err != nil {
		t.Fatalf("TagImpacts failed: %v", err)
	}
	if len(impacts) != 0 {
		t.Errorf("expected no impacts with unmet condition, got %d", len(impacts))
	}

	snap.Conditions = []models.DayCondition{{Date: "2026-01-12", ConditionID: "c-healthy", Value: true}}
	impacts, err = TagImpacts(snap, "2026-01-12")
	if err != nil {
		t.Fatalf("TagImpacts failed: %v", err)
	}
	if len(impacts) != 1 || impacts[0].TagID != "t-gym" {
		t.Errorf("expected gym impact once condition holds, got %+v", impacts)
	}
}

func TestTagImpactsUnknownTagName(t *testing.T) {
	snap := Snapshot{
		Goals: []models.Goal{{ID: "g1", Name: "Move", Active: true}},
		Versions: map[string][]models.GoalVersion{
			"g1": {{
				ID: "v1", GoalID: "g1", Version: 1, EffectiveFrom: "2026-01-01",
				TargetWindow: models.WindowDay, TargetCount: 1, ScoringMode: models.ModeCount,
				TagWeights: map[string]float64{"t-gone": 1},
			}},
		},
	}

	impacts, err := TagImpacts(snap, "2026-01-05")
	if err != nil {
		t.Fatalf("TagImpacts failed: %v", err)
	}
	if len(impacts) != 1 || impacts[0].TagName != "Unknown tag" {
		t.Errorf("expected placeholder name for missing tag, got %+v", impacts)
	}
}
