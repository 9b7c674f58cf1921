package notifications

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/engine"
	"github.com/julianstephens/goaltrack/internal/logger"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/notifier"
	"github.com/julianstephens/goaltrack/internal/utils"
)

// RemindCmd runs one reminder pass: trend alerts for every active goal plus
// a daily check-in for goals still incomplete. Runs are rate limited by a
// cadence stored in app state, and every notification carries a dedupe key,
// so scheduling this command aggressively (cron, tray app timer) is safe.
type RemindCmd struct {
	Force  bool `short:"f" help:"Ignore the reminder cadence and run now."`
	DryRun bool `help:"Print what would be generated without storing or sending."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	if !c.Force {
		due, err := c.cadenceDue(ctx)
		if err != nil {
			return err
		}
		if !due {
			fmt.Printf("Reminder cadence (%d min) has not elapsed; use --force to run anyway.\n",
				constants.ReminderCadenceMinutes)
			return nil
		}
	}

	today, err := ctx.ResolveDate("")
	if err != nil {
		return err
	}

	generated, err := c.generate(ctx, today)
	if err != nil {
		return err
	}

	if c.DryRun {
		if len(generated) == 0 {
			fmt.Println("Nothing to notify.")
		}
		for _, n := range generated {
			fmt.Printf("[DryRun] %s: %s - %s\n", n.Type, n.Title, n.Body)
		}
		return nil
	}

	stored := c.store(ctx, generated)

	if err := ctx.Store.SetAppState(constants.ReminderStateKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if len(stored) == 0 {
		fmt.Println("Nothing new to notify.")
		return nil
	}
	for _, n := range stored {
		fmt.Printf("%s: %s\n", n.Title, n.Body)
	}
	return nil
}

// generate builds the candidate notifications for a reminder pass. Trend
// alerts look at the trailing four weeks of day-bucketed history, wide
// enough for both drop windows.
func (c *RemindCmd) generate(ctx *cli.Context, today string) ([]models.Notification, error) {
	day, err := utils.ParseDate(today)
	if err != nil {
		return nil, err
	}
	trendStart := utils.FormatDate(day.AddDate(0, 0, -27))

	snap, err := ctx.LoadRangeSnapshot(trendStart, today)
	if err != nil {
		return nil, err
	}

	var goalIDs []string
	for _, goal := range snap.Goals {
		if goal.Active {
			goalIDs = append(goalIDs, goal.ID)
		}
	}

	var generated []models.Notification
	if len(goalIDs) > 0 {
		series, err := engine.BuildTrend(snap, goalIDs, trendStart, today, models.BucketDay)
		if err != nil {
			return nil, err
		}
		cfg := engine.AlertConfig{
			AvgDropThreshold: constants.AvgDropThreshold,
			AvgDropWindow:    constants.AvgDropWindow,
		}
		for _, s := range series {
			generated = append(generated, engine.GenerateAlerts(s, cfg)...)
		}
	}

	statuses, err := engine.ScoreDay(snap, today)
	if err != nil {
		return nil, err
	}
	if reminder := engine.BuildReminder(statuses, today); reminder != nil {
		generated = append(generated, *reminder)
	}
	return generated, nil
}

// store persists the candidates, returning the ones that were actually new.
// Delivery through the tray app is best effort.
func (c *RemindCmd) store(ctx *cli.Context, generated []models.Notification) []models.Notification {
	n := notifier.New()

	var stored []models.Notification
	for _, candidate := range generated {
		candidate.ID = uuid.New().String()
		inserted, err := ctx.Store.AddNotification(candidate)
		if err != nil {
			logger.Warn("Failed to store notification", "dedupe_key", candidate.DedupeKey, "error", err)
			continue
		}
		if !inserted {
			continue
		}
		stored = append(stored, candidate)

		if err := n.Notify(candidate.Title, candidate.Body); err != nil {
			logger.Debug("Desktop delivery unavailable", "error", err)
		}
	}
	return stored
}

func (c *RemindCmd) cadenceDue(ctx *cli.Context) (bool, error) {
	lastRun, err := ctx.Store.GetAppState(constants.ReminderStateKey)
	if err != nil {
		return false, err
	}
	if lastRun == "" {
		return true, nil
	}
	last, err := time.Parse(time.RFC3339, lastRun)
	if err != nil {
		// Unparseable state is treated as never-run
		return true, nil
	}
	return time.Since(last) >= time.Duration(constants.ReminderCadenceMinutes)*time.Minute, nil
}
