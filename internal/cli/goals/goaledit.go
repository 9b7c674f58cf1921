package goals

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
)

// GoalEditCmd changes a goal's definition by appending a new version. The
// existing history is never rewritten, so past days keep scoring against the
// definition that was in effect then. Editing with an effective-from that
// matches an existing version replaces that version in place instead.
type GoalEditCmd struct {
	Name          string   `arg:"" help:"Goal name."`
	Window        string   `short:"w" help:"New target window (day|week|month)."`
	Target        *float64 `short:"t" help:"New target count or rating threshold."`
	Mode          string   `short:"m" help:"New scoring mode (count|binary|rating)."`
	Tags          string   `help:"New tag weights, e.g. 'run=1,bike=2'. Replaces the previous set."`
	Conditions    string   `help:"New required conditions. Replaces the previous set."`
	ClearConds    bool     `name:"clear-conditions" help:"Remove all required conditions."`
	EffectiveFrom string   `help:"Date the change takes effect (YYYY-MM-DD). Defaults to today."`
}

func (c *GoalEditCmd) Run(ctx *cli.Context) error {
	goal, err := ctx.Store.GetGoalByName(c.Name)
	if err != nil {
		return fmt.Errorf("goal %q not found", c.Name)
	}

	versions, err := ctx.Store.GetGoalVersions(goal.ID)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		return fmt.Errorf("goal %q has no versions; the database needs repair (try 'goaltrack doctor')", c.Name)
	}

	effectiveFrom, err := ctx.ResolveDate(c.EffectiveFrom)
	if err != nil {
		return fmt.Errorf("invalid --effective-from: %w", err)
	}

	// Versions are ordered by effective_from.
	latest := versions[len(versions)-1]
	var replacing *models.GoalVersion
	for i := range versions {
		if versions[i].EffectiveFrom == effectiveFrom {
			replacing = &versions[i]
			break
		}
	}
	if replacing == nil && effectiveFrom < latest.EffectiveFrom {
		return fmt.Errorf("effective-from %s predates the latest version (effective %s); history is append-only",
			effectiveFrom, latest.EffectiveFrom)
	}

	// Unspecified fields carry over from the version being superseded.
	base := latest
	if replacing != nil {
		base = *replacing
	}
	next := base

	if c.Window != "" {
		window, err := cli.ParseWindow(c.Window)
		if err != nil {
			return err
		}
		next.TargetWindow = window
	}
	if c.Mode != "" {
		mode, err := cli.ParseMode(c.Mode)
		if err != nil {
			return err
		}
		next.ScoringMode = mode
	}
	if c.Target != nil {
		next.TargetCount = *c.Target
	}
	if c.Tags != "" {
		weights, err := resolveTagWeights(ctx, c.Tags)
		if err != nil {
			return err
		}
		next.TagWeights = weights
	}
	if c.ClearConds {
		next.Conditions = nil
	} else if c.Conditions != "" {
		conds, err := resolveConditions(ctx, c.Conditions)
		if err != nil {
			return err
		}
		next.Conditions = conds
	}

	if next.ScoringMode != models.ModeRating && len(next.TagWeights) == 0 {
		return fmt.Errorf("%s goals need at least one tag (--tags)", next.ScoringMode)
	}

	if replacing != nil {
		next.ID = replacing.ID
		next.Version = replacing.Version
		next.EffectiveFrom = replacing.EffectiveFrom
		if err := next.Validate(); err != nil {
			return fmt.Errorf("invalid goal version: %w", err)
		}
		if err := ctx.Store.UpdateGoalVersion(next); err != nil {
			return err
		}
		fmt.Printf("Updated %s v%d (effective %s) in place\n", goal.Name, next.Version, next.EffectiveFrom)
		return nil
	}

	next.ID = uuid.New().String()
	next.Version = latest.Version + 1
	next.EffectiveFrom = effectiveFrom
	next.CreatedAt = time.Now().UTC()
	if err := next.Validate(); err != nil {
		return fmt.Errorf("invalid goal version: %w", err)
	}
	if err := ctx.Store.AddGoalVersion(next); err != nil {
		return err
	}

	fmt.Printf("Added %s v%d effective %s: %s target %s, %s window\n",
		goal.Name, next.Version, effectiveFrom, next.ScoringMode,
		strconv.FormatFloat(next.TargetCount, 'f', -1, 64), next.TargetWindow)
	fmt.Printf("Days before %s keep scoring against v%d.\n", effectiveFrom, latest.Version)
	return nil
}
