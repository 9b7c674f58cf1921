package goals

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/engine"
)

type GoalShowCmd struct {
	Name string `arg:"" help:"Goal name."`
	Date string `help:"Score the goal as of this date (YYYY-MM-DD). Defaults to today."`
}

func (c *GoalShowCmd) Run(ctx *cli.Context) error {
	goal, err := ctx.Store.GetGoalByName(c.Name)
	if err != nil {
		return fmt.Errorf("goal %q not found", c.Name)
	}

	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	versions, err := ctx.Store.GetGoalVersions(goal.ID)
	if err != nil {
		return err
	}
	tags, err := ctx.Store.GetAllTags(true)
	if err != nil {
		return err
	}
	conditions, err := ctx.Store.GetAllConditions(true)
	if err != nil {
		return err
	}

	tagNames := make(map[string]string, len(tags))
	for _, t := range tags {
		tagNames[t.ID] = t.Name
	}
	conditionNames := make(map[string]string, len(conditions))
	for _, cond := range conditions {
		conditionNames[cond.ID] = cond.Name
	}

	fmt.Printf("%s\n", goal.Name)
	if goal.Description != "" {
		fmt.Printf("  %s\n", goal.Description)
	}
	if goal.ArchivedAt != nil {
		fmt.Printf("  Archived %s\n", goal.ArchivedAt.Format("2006-01-02"))
	}

	current := engine.ResolveVersion(versions, date)

	fmt.Println("\nVersion history:")
	for _, v := range versions {
		marker := " "
		if current != nil && v.ID == current.ID {
			marker = "*"
		}
		fmt.Printf("  %s v%d effective %s: %s target %s per %s\n",
			marker, v.Version, v.EffectiveFrom, v.ScoringMode,
			strconv.FormatFloat(v.TargetCount, 'f', -1, 64), v.TargetWindow)
		if len(v.TagWeights) > 0 {
			fmt.Printf("      tags: %s\n", formatTagWeights(v.TagWeights, tagNames))
		}
		if len(v.Conditions) > 0 {
			fmt.Printf("      requires: %s\n", formatConditions(v.Conditions, conditionNames))
		}
	}

	snap, err := ctx.LoadDaySnapshot(date)
	if err != nil {
		return err
	}
	statuses, err := engine.ScoreDay(snap, date)
	if err != nil {
		return err
	}
	for _, status := range statuses {
		if status.GoalID != goal.ID {
			continue
		}
		fmt.Printf("\nStatus on %s: %s %s (%s)\n",
			date, cli.StatusGlyph(status.Status), status.Status, cli.FormatProgress(status))
	}
	return nil
}

func formatTagWeights(weights map[string]float64, tagNames map[string]string) string {
	parts := make([]string, 0, len(weights))
	for id, weight := range weights {
		name := tagNames[id]
		if name == "" {
			name = id
		}
		parts = append(parts, fmt.Sprintf("%s=%s", name, strconv.FormatFloat(weight, 'f', -1, 64)))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

func formatConditions(required map[string]bool, conditionNames map[string]string) string {
	parts := make([]string, 0, len(required))
	for id, value := range required {
		name := conditionNames[id]
		if name == "" {
			name = id
		}
		if value {
			parts = append(parts, name)
		} else {
			parts = append(parts, name+"=false")
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
