package days

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/engine"
	"github.com/julianstephens/goaltrack/internal/models"
)

type LogCmd struct {
	Tag     string `arg:"" help:"Tag name to log."`
	Count   int    `short:"c" help:"Event count." default:"1"`
	Date    string `short:"d" help:"Date to log on (YYYY-MM-DD). Defaults to today."`
	Note    string `short:"n" help:"Optional note for this event."`
	Preview bool   `short:"p" help:"Show which goals this tag feeds without logging anything."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	tag, err := ctx.Store.GetTagByName(c.Tag)
	if err != nil {
		return fmt.Errorf("tag %q not found (add it with 'goaltrack tag add %s')", c.Tag, c.Tag)
	}

	if c.Preview {
		return c.preview(ctx, tag, date)
	}

	now := time.Now().UTC()
	event := models.TagEvent{
		ID:    uuid.New().String(),
		Date:  date,
		TagID: tag.ID,
		Count: c.Count,
		TS:    &now,
		Note:  c.Note,
	}
	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	if err := ctx.Store.AddTagEvent(event); err != nil {
		return err
	}

	fmt.Printf("Logged %s ×%d on %s\n", tag.Name, c.Count, date)
	return c.showAffected(ctx, tag, date)
}

func (c *LogCmd) preview(ctx *cli.Context, tag models.Tag, date string) error {
	snap, err := ctx.LoadDaySnapshot(date)
	if err != nil {
		return err
	}
	impacts, err := engine.TagImpacts(snap, date)
	if err != nil {
		return err
	}

	for _, impact := range impacts {
		if impact.TagID != tag.ID {
			continue
		}
		if len(impact.Goals) == 0 {
			break
		}
		fmt.Printf("Logging %s on %s would feed:\n", tag.Name, date)
		for _, goal := range impact.Goals {
			fmt.Printf("  %s (weight %s, %s target, %s window)\n",
				goal.GoalName, strconv.FormatFloat(goal.Weight, 'f', -1, 64),
				goal.ScoringMode, goal.TargetWindow)
		}
		return nil
	}
	fmt.Printf("No applicable goals use %s on %s.\n", tag.Name, date)
	return nil
}

// showAffected re-scores the date and prints the goals the new event feeds.
func (c *LogCmd) showAffected(ctx *cli.Context, tag models.Tag, date string) error {
	snap, err := ctx.LoadDaySnapshot(date)
	if err != nil {
		return err
	}
	statuses, err := engine.ScoreDay(snap, date)
	if err != nil {
		return err
	}

	for _, status := range statuses {
		version := engine.ResolveVersion(snap.Versions[status.GoalID], date)
		if version == nil {
			continue
		}
		if _, feeds := version.TagWeights[tag.ID]; !feeds || !status.Applicable {
			continue
		}
		fmt.Printf("  %s %s: %s\n", cli.StatusGlyph(status.Status), status.GoalName, cli.FormatProgress(status))
	}
	return nil
}
