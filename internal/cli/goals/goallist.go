package goals

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/engine"
)

type GoalListCmd struct {
	All     bool `help:"Include archived goals."`
	ShowIDs bool `help:"Show goal IDs." name:"show-ids"`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	goals, err := ctx.Store.GetAllGoals(c.All)
	if err != nil {
		return fmt.Errorf("failed to get goals: %w", err)
	}
	if len(goals) == 0 {
		fmt.Println("No goals found")
		return nil
	}

	versions, err := ctx.Store.GetAllGoalVersions()
	if err != nil {
		return fmt.Errorf("failed to get goal versions: %w", err)
	}

	today, err := ctx.ResolveDate("")
	if err != nil {
		return err
	}

	fmt.Println("Goals:")
	for _, goal := range goals {
		status := "active"
		if goal.ArchivedAt != nil {
			status = "archived"
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", goal.ID)
		}

		current := engine.ResolveVersion(versions[goal.ID], today)
		if current == nil {
			fmt.Printf("  [%s] %s%s - no version in effect yet\n", status, goal.Name, idStr)
			continue
		}
		fmt.Printf("  [%s] %s%s - %s target %s per %s (v%d)\n",
			status, goal.Name, idStr, current.ScoringMode,
			strconv.FormatFloat(current.TargetCount, 'f', -1, 64),
			current.TargetWindow, current.Version)
	}
	return nil
}
