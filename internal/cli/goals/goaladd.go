package goals

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
)

type GoalAddCmd struct {
	Name          string  `arg:"" optional:"" help:"Goal name."`
	Description   string  `help:"Goal description."`
	Window        string  `short:"w" help:"Target window (day|week|month)." default:"day"`
	Target        float64 `short:"t" help:"Target count, or rating threshold for rating mode." default:"1"`
	Mode          string  `short:"m" help:"Scoring mode (count|binary|rating)." default:"count"`
	Tags          string  `help:"Comma-separated tag weights, e.g. 'run=1,bike=2'. Bare names weigh 1."`
	Conditions    string  `help:"Comma-separated required conditions, e.g. 'at_home,traveling=false'."`
	EffectiveFrom string  `help:"Date the first version takes effect (YYYY-MM-DD). Defaults to today."`
	Interactive   bool    `short:"i" help:"Prompt for goal fields interactively."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	if c.Interactive {
		if err := c.promptForFields(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("goal name is required (pass it as an argument or use --interactive)")
	}

	window, err := cli.ParseWindow(c.Window)
	if err != nil {
		return err
	}
	mode, err := cli.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	effectiveFrom, err := ctx.ResolveDate(c.EffectiveFrom)
	if err != nil {
		return fmt.Errorf("invalid --effective-from: %w", err)
	}

	tagWeights, err := resolveTagWeights(ctx, c.Tags)
	if err != nil {
		return err
	}
	if mode != models.ModeRating && len(tagWeights) == 0 {
		return fmt.Errorf("%s goals need at least one tag (--tags)", mode)
	}
	conditionIDs, err := resolveConditions(ctx, c.Conditions)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.Name)
	if existing, err := ctx.Store.GetGoalByName(name); err == nil && existing.Active {
		return fmt.Errorf("an active goal named %q already exists", name)
	}

	goal := models.Goal{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(c.Description),
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := goal.Validate(); err != nil {
		return fmt.Errorf("invalid goal: %w", err)
	}

	version := models.GoalVersion{
		ID:            uuid.New().String(),
		GoalID:        goal.ID,
		Version:       1,
		EffectiveFrom: effectiveFrom,
		TargetWindow:  window,
		TargetCount:   c.Target,
		ScoringMode:   mode,
		TagWeights:    tagWeights,
		Conditions:    conditionIDs,
		CreatedAt:     time.Now().UTC(),
	}
	if err := version.Validate(); err != nil {
		return fmt.Errorf("invalid goal version: %w", err)
	}

	if err := ctx.Store.AddGoal(goal); err != nil {
		return err
	}
	if err := ctx.Store.AddGoalVersion(version); err != nil {
		return err
	}

	fmt.Printf("Added goal: %s (ID: %s)\n", goal.Name, goal.ID)
	fmt.Printf("  v1 effective %s: %s target %s, %s window\n",
		effectiveFrom, mode, strconv.FormatFloat(c.Target, 'f', -1, 64), window)
	return nil
}

func (c *GoalAddCmd) promptForFields() error {
	targetStr := strconv.FormatFloat(c.Target, 'f', -1, 64)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal name").
				Value(&c.Name),
			huh.NewSelect[string]().
				Title("Target window").
				Options(
					huh.NewOption("Per day", "day"),
					huh.NewOption("Per week (Monday start)", "week"),
					huh.NewOption("Per month", "month"),
				).
				Value(&c.Window),
			huh.NewSelect[string]().
				Title("Scoring mode").
				Options(
					huh.NewOption("Count tag events", "count"),
					huh.NewOption("Done / not done", "binary"),
					huh.NewOption("Average of 1-100 ratings", "rating"),
				).
				Value(&c.Mode),
			huh.NewInput().
				Title("Target (count, or rating threshold)").
				Value(&targetStr),
			huh.NewInput().
				Title("Tags (name=weight, comma-separated; empty for rating goals)").
				Value(&c.Tags),
			huh.NewInput().
				Title("Required conditions (comma-separated, optional)").
				Value(&c.Conditions),
			huh.NewText().
				Title("Description (optional)").
				Value(&c.Description),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}

	target, err := strconv.ParseFloat(strings.TrimSpace(targetStr), 64)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", targetStr, err)
	}
	c.Target = target
	return nil
}

// resolveTagWeights maps a name-keyed weight flag onto tag IDs, failing on
// unknown tags.
func resolveTagWeights(ctx *cli.Context, flag string) (map[string]float64, error) {
	byName, err := cli.ParseTagWeights(flag)
	if err != nil {
		return nil, err
	}
	weights := make(map[string]float64, len(byName))
	for name, weight := range byName {
		tag, err := ctx.Store.GetTagByName(name)
		if err != nil {
			return nil, fmt.Errorf("unknown tag %q (add it with 'goaltrack tag add %s')", name, name)
		}
		weights[tag.ID] = weight
	}
	return weights, nil
}

// resolveConditions maps "name" / "name=false" entries onto condition IDs
// with their required values.
func resolveConditions(ctx *cli.Context, flag string) (map[string]bool, error) {
	required := make(map[string]bool)
	for _, entry := range cli.ParseNameList(flag) {
		name := entry
		value := true
		if idx := strings.Index(entry, "="); idx != -1 {
			name = strings.TrimSpace(entry[:idx])
			parsed, err := strconv.ParseBool(strings.TrimSpace(entry[idx+1:]))
			if err != nil {
				return nil, fmt.Errorf("invalid condition value in %q: %w", entry, err)
			}
			value = parsed
		}
		condition, err := ctx.Store.GetConditionByName(name)
		if err != nil {
			return nil, fmt.Errorf("unknown condition %q (add it with 'goaltrack condition add %s')", name, name)
		}
		required[condition.ID] = value
	}
	return required, nil
}
