package engine

import (
	"math"

	"github.com/julianstephens/goaltrack/internal/models"
)

// Comparison is the pairwise correlation summary for two goals over a shared
// bucket grid. Correlation is nil when fewer than two paired samples exist
// or when either series has zero variance; nil means "not enough data",
// which callers must not conflate with a zero coefficient.
type Comparison struct {
	GoalA       string   `json:"goal_id_a"`
	GoalB       string   `json:"goal_id_b"`
	Correlation *float64 `json:"correlation"`
	N           int      `json:"n"`
}

// CompareResult bundles the trend series used for a comparison with the
// pairwise correlation summaries derived from them.
type CompareResult struct {
	Series      []TrendSeries `json:"series"`
	Comparisons []Comparison  `json:"comparisons"`
}

// CompareTrends builds trend series for the requested goals and computes the
// Pearson correlation of progress ratios for every unordered goal pair.
// Only buckets where both goals are applicable contribute paired samples;
// not-applicable points are excluded from both sides.
func CompareTrends(snap Snapshot, goalIDs []string, start, end string, bucket models.TrendBucket) (*CompareResult, error) {
	series, err := BuildTrend(snap, goalIDs, start, end, bucket)
	if err != nil {
		return nil, err
	}

	result := &CompareResult{Series: series}
	for i := 0; i < len(series); i++ {
		for j := i + 1; j < len(series); j++ {
			var ratiosA, ratiosB []float64
			pointsA, pointsB := series[i].Points, series[j].Points
			for k := 0; k < len(pointsA) && k < len(pointsB); k++ {
				a, b := &pointsA[k], &pointsB[k]
				if a.Applicable && b.Applicable && a.Status != models.StatusNA && b.Status != models.StatusNA {
					ratiosA = append(ratiosA, a.Ratio)
					ratiosB = append(ratiosB, b.Ratio)
				}
			}
			result.Comparisons = append(result.Comparisons, Comparison{
				GoalA:       series[i].GoalID,
				GoalB:       series[j].GoalID,
				Correlation: pearson(ratiosA, ratiosB),
				N:           len(ratiosA),
			})
		}
	}
	return result, nil
}

// pearson computes the product-moment correlation of two equal-length
// samples. Returns nil for n < 2 and for degenerate (zero-variance) input.
func pearson(a, b []float64) *float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 {
		return nil
	}

	meanA, meanB := 0.0, 0.0
	for i := 0; i < n; i++ {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= float64(n)
	meanB /= float64(n)

	varA, varB, cov := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		da, db := a[i]-meanA, b[i]-meanB
		varA += da * da
		varB += db * db
		cov += da * db
	}
	if varA == 0 || varB == 0 {
		return nil
	}
	r := cov / math.Sqrt(varA*varB)
	return &r
}
