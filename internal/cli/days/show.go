package days

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/engine"
)

// ShowCmd prints the scored view of one day: every active goal, its status
// under the version effective that day, and the day's journal note.
type ShowCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD). Defaults to today."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	snap, err := ctx.LoadDaySnapshot(date)
	if err != nil {
		return err
	}
	statuses, err := engine.ScoreDay(snap, date)
	if err != nil {
		return err
	}

	if len(statuses) == 0 {
		fmt.Printf("%s: no active goals.\n", date)
		return nil
	}

	summary := engine.SummarizeStatuses(statuses)
	fmt.Printf("%s: %d/%d goals met\n\n", date, summary.MetGoals, summary.ApplicableGoals)

	for _, status := range statuses {
		fmt.Printf("  %s %-24s %s\n", cli.StatusGlyph(status.Status), status.GoalName, cli.FormatProgress(status))
	}

	entry, err := ctx.Store.GetDayEntry(date)
	if err == nil && entry.Note != "" {
		fmt.Printf("\nNote: %s\n", entry.Note)
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return nil
}
