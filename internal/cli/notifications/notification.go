package notifications

import (
	"fmt"

	"github.com/julianstephens/goaltrack/internal/cli"
)

type NotificationListCmd struct {
	All   bool `help:"Include read notifications."`
	Limit int  `short:"n" help:"Maximum notifications to show." default:"20"`
}

func (c *NotificationListCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Store.GetNotifications(!c.All, c.Limit)
	if err != nil {
		return fmt.Errorf("failed to get notifications: %w", err)
	}
	if len(items) == 0 {
		fmt.Println("No notifications.")
		return nil
	}

	for _, n := range items {
		read := " "
		if n.ReadAt != nil {
			read = "r"
		}
		fmt.Printf("  [%s] %s  %-8s %s\n      %s\n      ID: %s\n",
			read, n.CreatedAt.Format("2006-01-02 15:04"), n.Type, n.Title, n.Body, n.ID)
	}
	return nil
}

type NotificationReadCmd struct {
	ID  string `arg:"" optional:"" help:"Notification ID to mark read."`
	All bool   `help:"Mark every unread notification read."`
}

func (c *NotificationReadCmd) Run(ctx *cli.Context) error {
	if c.All {
		unread, err := ctx.Store.GetNotifications(true, 0)
		if err != nil {
			return err
		}
		for _, n := range unread {
			if err := ctx.Store.MarkNotificationRead(n.ID); err != nil {
				return err
			}
		}
		fmt.Printf("Marked %d notification(s) read.\n", len(unread))
		return nil
	}

	if c.ID == "" {
		return fmt.Errorf("pass a notification ID or --all")
	}
	if err := ctx.Store.MarkNotificationRead(c.ID); err != nil {
		return err
	}
	fmt.Println("Marked read.")
	return nil
}
