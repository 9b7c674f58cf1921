package engine

import (
	"math"
	"testing"

	"github.com/julianstephens/goaltrack/internal/models"
)

func pairedGoalsSnapshot() Snapshot {
	version := func(id, goalID, tagID string) []models.GoalVersion {
		return []models.GoalVersion{{
			ID: id, GoalID: goalID, Version: 1, EffectiveFrom: "2026-01-01",
			TargetWindow: models.WindowDay, TargetCount: 2, ScoringMode: models.ModeCount,
			TagWeights: map[string]float64{tagID: 1},
		}}
	}
	return Snapshot{
		Goals: []models.Goal{
			{ID: "gA", Name: "Run", Active: true},
			{ID: "gB", Name: "Sleep early", Active: true},
		},
		Versions: map[string][]models.GoalVersion{
			"gA": version("vA", "gA", "t-run"),
			"gB": version("vB", "gB", "t-sleep"),
		},
	}
}

func TestCompareTrendsPositiveCorrelation(t *testing.T) {
	snap := pairedGoalsSnapshot()
	snap.Events = []models.TagEvent{
		{ID: "e1", Date: "2026-01-05", TagID: "t-run", Count: 1},
		{ID: "e2", Date: "2026-01-05", TagID: "t-sleep", Count: 1},
		{ID: "e3", Date: "2026-01-06", TagID: "t-run", Count: 2},
		{ID: "e4", Date: "2026-01-06", TagID: "t-sleep", Count: 2},
	}

	result, err := CompareTrends(snap, []string{"gA", "gB"}, "2026-01-05", "2026-01-06", models.BucketDay)
	if err != nil {
		t.Fatalf("CompareTrends failed: %v", err)
	}
	if len(result.Comparisons) != 1 {
		t.Fatalf("expected 1 comparison, got %d", len(result.Comparisons))
	}
	cmp := result.Comparisons[0]
	if cmp.N != 2 {
		t.Errorf("expected 2 paired samples, got %d", cmp.N)
	}
	if cmp.Correlation == nil {
		t.Fatal("expected a correlation coefficient")
	}
	if math.Abs(*cmp.Correlation-1.0) > 1e-9 {
		t.Errorf("expected correlation 1.0, got %v", *cmp.Correlation)
	}
}

func TestCompareTrendsSymmetry(t *testing.T) {
	snap := pairedGoalsSnapshot()
	snap.Events = []models.TagEvent{
		{ID: "e1", Date: "2026-01-05", TagID: "t-run", Count: 2},
		{ID: "e2", Date: "2026-01-06", TagID: "t-sleep", Count: 1},
		{ID: "e3", Date: "2026-01-07", TagID: "t-run", Count: 1},
		{ID: "e4", Date: "2026-01-07", TagID: "t-sleep", Count: 2},
	}

	forward, err := CompareTrends(snap, []string{"gA", "gB"}, "2026-01-05", "2026-01-07", models.BucketDay)
	if err != nil {
		t.Fatalf("CompareTrends failed: %v", err)
	}
	reverse, err := CompareTrends(snap, []string{"gB", "gA"}, "2026-01-05", "2026-01-07", models.BucketDay)
	if err != nil {
		t.Fatalf("CompareTrends failed: %v", err)
	}
	a, b := forward.Comparisons[0], reverse.Comparisons[0]
	if a.Correlation == nil || b.Correlation == nil {
		t.Fatal("expected coefficients in both directions")
	}
	if math.Abs(*a.Correlation-*b.Correlation) > 1e-9 {
		t.Errorf("correlation must be symmetric: %v vs %v", *a.Correlation, *b.Correlation)
	}
	if a.N != b.N {
		t.Errorf("paired sample count must be symmetric: %d vs %d", a.N, b.N)
	}
}

func TestCompareTrendsExcludesUnpairedBuckets(t *testing.T) {
	snap := pairedGoalsSnapshot()
	// gB only becomes effective mid-range, so earlier buckets are na on
	// its side and must not contribute pairs.
	snap.Versions["gB"][0].EffectiveFrom = "2026-01-06"
	snap.Events = []models.TagEvent{
		{ID: "e1", Date: "2026-01-05", TagID: "t-run", Count: 2},
		{ID: "e2", Date: "2026-01-06", TagID: "t-run", Count: 1},
		{ID: "e3", Date: "2026-01-07", TagID: "t-sleep", Count: 2},
	}

	result, err := CompareTrends(snap, []string{"gA", "gB"}, "2026-01-05", "2026-01-07", models.BucketDay)
	if err != nil {
		t.Fatalf("CompareTrends failed: %v", err)
	}
	if got := result.Comparisons[0].N; got != 2 {
		t.Errorf("expected only 2 paired buckets, got %d", got)
	}
}

func TestCompareTrendsPairwiseCount(t *testing.T) {
	snap := pairedGoalsSnapshot()
	snap.Goals = append(snap.Goals, models.Goal{ID: "gC", Name: "Read", Active: true})
	snap.Versions["gC"] = []models.GoalVersion{{
		ID: "vC", GoalID: "gC", Version: 1, EffectiveFrom: "2026-01-01",
		TargetWindow: models.WindowDay, TargetCount: 1, ScoringMode: models.ModeCount,
		TagWeights: map[string]float64{"t-read": 1},
	}}

	result, err := CompareTrends(snap, []string{"gA", "gB", "gC"}, "2026-01-05", "2026-01-07", models.BucketDay)
	if err != nil {
		t.Fatalf("CompareTrends failed: %v", err)
	}
	if len(result.Comparisons) != 3 {
		t.Errorf("expected 3 unordered pairs, got %d", len(result.Comparisons))
	}
	if len(result.Series) != 3 {
		t.Errorf("expected 3 series, got %d", len(result.Series))
	}
}

func TestPearson(t *testing.T) {
	almost := func(got *float64, want float64) bool {
		return got != nil && math.Abs(*got-want) < 1e-9
	}

	if got := pearson([]float64{1, 2, 3}, []float64{2, 4, 6}); !almost(got, 1) {
		t.Errorf("expected r=1 for scaled series, got %v", got)
	}
	if got := pearson([]float64{1, 2, 3}, []float64{6, 4, 2}); !almost(got, -1) {
		t.Errorf("expected r=-1 for inverted series, got %v", got)
	}
	if got := pearson([]float64{1}, []float64{2}); got != nil {
		t.Errorf("expected nil below two samples, got %v", *got)
	}
	if got := pearson(nil, nil); got != nil {
		t.Error("expected nil for empty input")
	}
	if got := pearson([]float64{2, 2, 2}, []float64{1, 5, 9}); got != nil {
		t.Errorf("expected nil for zero variance, got %v", *got)
	}
	// Two samples is the defined minimum.
	if got := pearson([]float64{1, 2}, []float64{3, 5}); !almost(got, 1) {
		t.Errorf("expected r=1 at n=2, got %v", got)
	}
}
