package days

import (
	"fmt"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
)

type RateCmd struct {
	Goal   string `arg:"" help:"Goal name to rate."`
	Rating int    `arg:"" help:"Rating from 1 to 100."`
	Date   string `short:"d" help:"Date to rate (YYYY-MM-DD). Defaults to today."`
	Note   string `short:"n" help:"Optional note."`
}

func (c *RateCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	goal, err := ctx.Store.GetGoalByName(c.Goal)
	if err != nil {
		return fmt.Errorf("goal %q not found", c.Goal)
	}

	rating := models.GoalRating{
		Date:   date,
		GoalID: goal.ID,
		Rating: c.Rating,
		Note:   c.Note,
	}
	if err := rating.Validate(); err != nil {
		return fmt.Errorf("invalid rating: %w", err)
	}

	// Ratings upsert: re-rating a day replaces the earlier value.
	if err := ctx.Store.SetGoalRating(rating); err != nil {
		return err
	}

	fmt.Printf("Rated %s %d/100 on %s\n", goal.Name, c.Rating, date)
	return nil
}
