package system

import (
	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/cli/notifications"
)

// NotifyCmd is the entry point the tray app invokes on its timer. It runs a
// cadence-limited reminder pass, so back-to-back invocations are harmless.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	remind := notifications.RemindCmd{DryRun: c.DryRun}
	return remind.Run(ctx)
}
