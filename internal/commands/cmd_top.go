package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/dashbell/internal/bell"
	"github.com/colonyops/dashbell/internal/core/notify"
	"github.com/colonyops/dashbell/internal/core/styles"
	"github.com/colonyops/dashbell/pkg/iojson"
)

type TopCmd struct {
	flags *Flags
	app   *bell.App

	limit      int
	jsonOutput bool
}

// NewTopCmd creates a new top command
func NewTopCmd(flags *Flags, app *bell.App) *TopCmd {
	return &TopCmd{flags: flags, app: app}
}

// Register adds the top command to the application
func (cmd *TopCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "top",
		Usage:     "Show the most recent notifications",
		UsageText: "dashbell top [--limit N] [--json]",
		Description: `Shows the notifications the bell dropdown displays: the most recent
entries regardless of read state. The limit defaults to display.limit.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "number of notifications to show (defaults to display.limit)",
				Destination: &cmd.limit,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *TopCmd) run(_ context.Context, c *cli.Command) error {
	var list []notify.Notification
	if c.IsSet("limit") {
		list = notify.TopByRecency(cmd.app.Center.Notifications(), cmd.limit)
	} else {
		list = cmd.app.Center.DisplayNotifications()
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, notify.NewFeedResponse(list))
	}

	if len(list) == 0 {
		_, _ = fmt.Fprintln(os.Stderr, styles.TextMutedStyle.Render("No notifications"))
		return nil
	}

	now := cmd.app.Center.Now()
	for _, n := range list {
		dot := styles.UnreadDotStyle.Render(styles.IconUnread)
		title := styles.ItemTitleStyle.Render(n.Title)
		if n.IsRead {
			dot = styles.ReadDotStyle.Render(styles.IconRead)
			title = styles.ItemTitleReadStyle.Render(n.Title)
		}

		_, _ = fmt.Fprintf(out, "%s %s %s\n", dot, title,
			styles.ItemTimeStyle.Render(notify.FormatRelativeTime(n.Timestamp, now)))
	}

	return nil
}
