package reports

import (
	"fmt"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/engine"
	"github.com/julianstephens/goaltrack/internal/utils"
)

type CalendarCmd struct {
	Start   string `help:"Range start (YYYY-MM-DD). Defaults to the first of this month."`
	End     string `help:"Range end (YYYY-MM-DD). Defaults to today."`
	Summary bool   `short:"s" help:"Show week and month rollups as well as days."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	end, err := ctx.ResolveDate(c.End)
	if err != nil {
		return err
	}
	start := c.Start
	if start == "" {
		endDay, err := utils.ParseDate(end)
		if err != nil {
			return err
		}
		monthStart, _ := utils.MonthBounds(endDay)
		start = utils.FormatDate(monthStart)
	} else if _, err := utils.ParseDate(start); err != nil {
		return err
	}

	snap, err := ctx.LoadRangeSnapshot(start, end)
	if err != nil {
		return err
	}
	calendar, err := engine.ScoreCalendarRange(snap, start, end)
	if err != nil {
		return err
	}

	fmt.Printf("Calendar %s .. %s\n\n", start, end)
	for _, day := range calendar.Days {
		fmt.Printf("  %s  %s\n", day.Date, formatCell(day.Summary))
	}

	if c.Summary {
		if len(calendar.Weeks) > 0 {
			fmt.Println("\nWeeks:")
			for _, week := range calendar.Weeks {
				fmt.Printf("  %s .. %s  %s\n", week.Start, week.End, formatCell(week.Summary))
			}
		}
		if len(calendar.Months) > 0 {
			fmt.Println("\nMonths:")
			for _, month := range calendar.Months {
				fmt.Printf("  %s .. %s  %s\n", month.Start, month.End, formatCell(month.Summary))
			}
		}
	}
	return nil
}

func formatCell(summary engine.Summary) string {
	if summary.ApplicableGoals == 0 {
		return "no applicable goals"
	}
	return fmt.Sprintf("%d/%d met (%.0f%%)",
		summary.MetGoals, summary.ApplicableGoals, summary.CompletionRatio*100)
}
