package reports

import (
	"fmt"
	"strings"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/engine"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/utils"
)

type TrendCmd struct {
	Goals  []string `arg:"" help:"Goal names to chart."`
	Bucket string   `short:"b" help:"Sampling bucket (day|week|month)." default:"day"`
	Start  string   `help:"Range start (YYYY-MM-DD). Defaults to 28 days before end."`
	End    string   `help:"Range end (YYYY-MM-DD). Defaults to today."`
}

func (c *TrendCmd) Run(ctx *cli.Context) error {
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
	series, err := engine.BuildTrend(snap, goalIDs, start, end, bucket)
	if err != nil {
		return err
	}

	for i, s := range series {
		if i > 0 {
			fmt.Println()
		}
		printSeries(s)
	}
	return nil
}

func printSeries(series engine.TrendSeries) {
	fmt.Printf("%s (%s buckets)\n", series.GoalName, series.Bucket)

	lastVersion := 0
	for _, point := range series.Points {
		if !point.Applicable {
			fmt.Printf("  %s  -\n", point.Date)
			continue
		}
		versionNote := ""
		if lastVersion != 0 && point.Version != lastVersion {
			versionNote = fmt.Sprintf("  « definition changed (v%d)", point.Version)
		}
		lastVersion = point.Version

		fmt.Printf("  %s  %s %-7s %s%s\n",
			point.Date, bar(point.Ratio), point.Status, formatPoint(point), versionNote)
	}
}

// bar renders a ten-cell progress bar capped at the target.
func bar(ratio float64) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*10 + 0.5)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", 10-filled) + "]"
}

func formatPoint(point engine.TrendPoint) string {
	if point.ScoringMode == models.ModeRating {
		if point.Samples == 0 {
			return "no ratings"
		}
		return fmt.Sprintf("avg %.1f/%.0f", point.Progress, point.Target)
	}
	return fmt.Sprintf("%.0f/%.0f", point.Progress, point.Target)
}

func resolveRange(ctx *cli.Context, start, end string) (string, string, error) {
	resolvedEnd, err := ctx.ResolveDate(end)
	if err != nil {
		return "", "", err
	}
	if start == "" {
		endDay, err := utils.ParseDate(resolvedEnd)
		if err != nil {
			return "", "", err
		}
		start = utils.FormatDate(endDay.AddDate(0, 0, -27))
	} else if _, err := utils.ParseDate(start); err != nil {
		return "", "", err
	}
	return start, resolvedEnd, nil
}

func resolveGoalNames(ctx *cli.Context, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		goal, err := ctx.Store.GetGoalByName(name)
		if err != nil {
			return nil, fmt.Errorf("goal %q not found", name)
		}
		ids = append(ids, goal.ID)
	}
	return ids, nil
}
