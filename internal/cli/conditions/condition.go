package conditions

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
)

type ConditionAddCmd struct {
	Name string `arg:"" help:"Condition name (e.g. at_home, traveling)."`
}

func (c *ConditionAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)

	if existing, err := ctx.Store.GetConditionByName(name); err == nil && existing.Active {
		return fmt.Errorf("an active condition named %q already exists", name)
	}

	condition := models.Condition{
		ID:        uuid.New().String(),
		Name:      name,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := condition.Validate(); err != nil {
		return fmt.Errorf("invalid condition: %w", err)
	}

	if err := ctx.Store.AddCondition(condition); err != nil {
		return err
	}

	fmt.Printf("Added condition: %s (ID: %s)\n", condition.Name, condition.ID)
	return nil
}

type ConditionListCmd struct {
	All bool `help:"Include inactive conditions."`
}

func (c *ConditionListCmd) Run(ctx *cli.Context) error {
	conditions, err := ctx.Store.GetAllConditions(c.All)
	if err != nil {
		return fmt.Errorf("failed to get conditions: %w", err)
	}
	if len(conditions) == 0 {
		fmt.Println("No conditions found")
		return nil
	}

	fmt.Println("Conditions:")
	for _, condition := range conditions {
		status := "active"
		if !condition.Active {
			status = "inactive"
		}
		fmt.Printf("  [%s] %s\n", status, condition.Name)
	}
	return nil
}

type ConditionDeactivateCmd struct {
	Name string `arg:"" help:"Condition name."`
}

func (c *ConditionDeactivateCmd) Run(ctx *cli.Context) error {
	condition, err := ctx.Store.GetConditionByName(c.Name)
	if err != nil {
		return fmt.Errorf("condition %q not found", c.Name)
	}

	if err := ctx.Store.DeactivateCondition(condition.ID); err != nil {
		return err
	}

	fmt.Printf("Deactivated condition: %s\n", condition.Name)
	return nil
}
