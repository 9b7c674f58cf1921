package goals

import (
	"fmt"

	"github.com/julianstephens/goaltrack/internal/cli"
)

type GoalArchiveCmd struct {
	Name string `arg:"" help:"Goal name."`
}

func (c *GoalArchiveCmd) Run(ctx *cli.Context) error {
	goal, err := ctx.Store.GetGoalByName(c.Name)
	if err != nil {
		return fmt.Errorf("goal %q not found", c.Name)
	}

	if err := ctx.Store.ArchiveGoal(goal.ID); err != nil {
		return err
	}

	fmt.Printf("Archived goal: %s\n", goal.Name)
	fmt.Println("Its history is kept; restore it with 'goaltrack goal restore'.")
	return nil
}

type GoalRestoreCmd struct {
	Name string `arg:"" help:"Goal name."`
}

func (c *GoalRestoreCmd) Run(ctx *cli.Context) error {
	// Archived goals don't resolve by name, so scan the full list.
	goals, err := ctx.Store.GetAllGoals(true)
	if err != nil {
		return err
	}
	for _, goal := range goals {
		if goal.Name == c.Name && goal.ArchivedAt != nil {
			if err := ctx.Store.RestoreGoal(goal.ID); err != nil {
				return err
			}
			fmt.Printf("Restored goal: %s\n", goal.Name)
			return nil
		}
	}
	return fmt.Errorf("no archived goal named %q found", c.Name)
}
