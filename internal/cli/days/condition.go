package days

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
)

type ConditionSetCmd struct {
	Name  string `arg:"" help:"Condition name."`
	Value string `arg:"" help:"Condition value (true|false)."`
	Date  string `short:"d" help:"Date to set (YYYY-MM-DD). Defaults to today."`
}

func (c *ConditionSetCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	condition, err := ctx.Store.GetConditionByName(c.Name)
	if err != nil {
		return fmt.Errorf("condition %q not found (add it with 'goaltrack condition add %s')", c.Name, c.Name)
	}

	value, err := strconv.ParseBool(c.Value)
	if err != nil {
		return fmt.Errorf("invalid value %q (expected true or false)", c.Value)
	}

	record := models.DayCondition{
		Date:        date,
		ConditionID: condition.ID,
		Value:       value,
	}
	if err := ctx.Store.SetDayCondition(record); err != nil {
		return err
	}

	fmt.Printf("Set %s = %t on %s\n", condition.Name, value, date)
	return nil
}
