package engine

import (
	"testing"

	"github.com/julianstephens/goaltrack/internal/models"
)

func countVersion(id string, version int, effectiveFrom string, target float64) models.GoalVersion {
	return models.GoalVersion{
		ID: id, GoalID: "g1", Version: version, EffectiveFrom: effectiveFrom,
		TargetWindow: models.WindowDay, TargetCount: target, ScoringMode: models.ModeCount,
		TagWeights: map[string]float64{"t1": 1},
	}
}

func TestResolveVersionClosedOpenIntervals(t *testing.T) {
	versions := []models.GoalVersion{
		countVersion("v1", 1, "2026-01-01", 3),
		countVersion("v2", 2, "2026-01-10", 5),
	}

	cases := []struct {
		date string
		want string
	}{
		{"2025-12-31", ""},
		{"2026-01-01", "v1"},
		{"2026-01-05", "v1"},
		{"2026-01-09", "v1"},
		{"2026-01-10", "v2"},
		{"2026-02-01", "v2"},
	}
	for _, tc := range cases {
		got := ResolveVersion(versions, tc.date)
		if tc.want == "" {
			if got != nil {
				t.Errorf("%s: expected no version, got %s", tc.date, got.ID)
			}
			continue
		}
		if got == nil || got.ID != tc.want {
			t.Errorf("%s: expected %s, got %+v", tc.date, tc.want, got)
		}
	}
}

func TestResolveVersionUnorderedInput(t *testing.T) {
	versions := []models.GoalVersion{
		countVersion("v2", 2, "2026-01-10", 5),
		countVersion("v1", 1, "2026-01-01", 3),
	}
	got := ResolveVersion(versions, "2026-01-15")
	if got == nil || got.ID != "v2" {
		t.Errorf("expected latest effective version regardless of order, got %+v", got)
	}
}

func TestResolveVersionEmptyHistory(t *testing.T) {
	if got := ResolveVersion(nil, "2026-01-01"); got != nil {
		t.Errorf("expected nil for empty history, got %+v", got)
	}
}

func TestValidateHistory(t *testing.T) {
	ok := []models.GoalVersion{
		countVersion("v1", 1, "2026-01-01", 3),
		countVersion("v2", 2, "2026-01-10", 5),
	}
	if err := ValidateHistory("g1", ok); err != nil {
		t.Errorf("valid history rejected: %v", err)
	}

	duplicate := []models.GoalVersion{
		countVersion("v1", 1, "2026-01-01", 3),
		countVersion("v2", 2, "2026-01-01", 5),
	}
	if err := ValidateHistory("g1", duplicate); err == nil {
		t.Error("expected error for duplicate effective-from")
	}

	regressing := []models.GoalVersion{
		countVersion("v1", 1, "2026-01-10", 3),
		countVersion("v2", 2, "2026-01-01", 5),
	}
	if err := ValidateHistory("g1", regressing); err == nil {
		t.Error("expected error for decreasing effective-from")
	}

	malformed := []models.GoalVersion{countVersion("v1", 1, "2026-01-01", 0)}
	if err := ValidateHistory("g1", malformed); err == nil {
		t.Error("expected error for non-positive target")
	}
}

func TestApplicable(t *testing.T) {
	unconditional := countVersion("v1", 1, "2026-01-01", 3)
	if !applicable(&unconditional, nil) {
		t.Error("version without conditions must always apply")
	}

	conditional := countVersion("v1", 1, "2026-01-01", 3)
	conditional.Conditions = map[string]bool{"c-home": true, "c-sick": false}

	cases := []struct {
		name string
		day  map[string]bool
		want bool
	}{
		{"all match", map[string]bool{"c-home": true, "c-sick": false}, true},
		{"value mismatch", map[string]bool{"c-home": false, "c-sick": false}, false},
		{"missing record", map[string]bool{"c-home": true}, false},
		{"no records", nil, false},
		{"extra records ignored", map[string]bool{"c-home": true, "c-sick": false, "c-other": true}, true},
	}
	for _, tc := range cases {
		if got := applicable(&conditional, tc.day); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
