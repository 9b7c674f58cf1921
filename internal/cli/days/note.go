package days

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
)

type NoteCmd struct {
	Text string `arg:"" optional:"" help:"Journal note text. Omit to show the existing note."`
	Date string `short:"d" help:"Date of the note (YYYY-MM-DD). Defaults to today."`
}

func (c *NoteCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	if strings.TrimSpace(c.Text) == "" {
		entry, err := ctx.Store.GetDayEntry(date)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				fmt.Printf("No note for %s.\n", date)
				return nil
			}
			return err
		}
		fmt.Printf("%s: %s\n", date, entry.Note)
		return nil
	}

	now := time.Now().UTC()
	entry := models.DayEntry{
		Date:      date,
		Note:      c.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, err := ctx.Store.GetDayEntry(date); err == nil {
		entry.CreatedAt = existing.CreatedAt
	}

	if err := ctx.Store.SaveDayEntry(entry); err != nil {
		return err
	}

	fmt.Printf("Saved note for %s\n", date)
	return nil
}
