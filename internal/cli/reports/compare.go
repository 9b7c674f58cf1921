package reports

import (
	"fmt"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/engine"
)

type CompareCmd struct {
	Goals  []string `arg:"" help:"Two or more goal names to compare."`
	Bucket string   `short:"b" help:"Sampling bucket (day|week|month)." default:"day"`
	Start  string   `help:"Range start (YYYY-MM-DD). Defaults to 28 days before end."`
	End    string   `help:"Range end (YYYY-MM-DD). Defaults to today."`
}

func (c *CompareCmd) Run(ctx *cli.Context) error {
	if len(c.Goals) < 2 {
		return fmt.Errorf("compare needs at least two goals")
	}
	bucket, err := cli.ParseBucket(c.Bucket)
	if err != nil {
		return err
	}
	start, end, err := resolveRange(ctx, c.Start, c.End)
	if err != nil {
		return err
	}
	goalIDs, err := resolveGoalNames(ctx, c.Goals)
	if err != nil {
		return err
	}

	snap, err := ctx.LoadRangeSnapshot(start, end)
	if err != nil {
		return err
	}
	result, err := engine.CompareTrends(snap, goalIDs, start, end, bucket)
	if err != nil {
		return err
	}

	names := make(map[string]string, len(result.Series))
	for _, series := range result.Series {
		names[series.GoalID] = series.GoalName
	}

	fmt.Printf("Correlations over %s .. %s (%s buckets):\n\n", start, end, bucket)
	for _, comparison := range result.Comparisons {
		label := fmt.Sprintf("%s × %s", names[comparison.GoalA], names[comparison.GoalB])
		if comparison.Correlation == nil {
			fmt.Printf("  %-40s insufficient data (%d paired samples)\n", label, comparison.N)
			continue
		}
		fmt.Printf("  %-40s r=%+.2f over %d samples  %s\n",
			label, *comparison.Correlation, comparison.N, describeCorrelation(*comparison.Correlation))
	}
	fmt.Println("\nCorrelation is not causation; treat these as hints to investigate.")
	return nil
}

func describeCorrelation(r float64) string {
	abs := r
	if abs < 0 {
		abs = -abs
	}
	strength := "weak"
	switch {
	case abs >= 0.7:
		strength = "strong"
	case abs >= 0.4:
		strength = "moderate"
	}
	direction := "positive"
	if r < 0 {
		direction = "negative"
	}
	return fmt.Sprintf("(%s %s)", strength, direction)
}
