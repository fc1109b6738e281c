package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/dashbell/internal/bell"
	"github.com/colonyops/dashbell/pkg/iojson"
)

type BadgeCmd struct {
	flags *Flags
	app   *bell.App

	jsonOutput bool
}

// NewBadgeCmd creates a new badge command
func NewBadgeCmd(flags *Flags, app *bell.App) *BadgeCmd {
	return &BadgeCmd{flags: flags, app: app}
}

// Register adds the badge command to the application
func (cmd *BadgeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "badge",
		Usage:     "Print the bell badge",
		UsageText: "dashbell badge [--json]",
		Description: `Prints the unread badge text ("1" through "9", or "9+").
Nothing is printed when every notification is read, which makes the
command suitable for status bars.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output count, badge, and visibility as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

type badgeJSON struct {
	UnreadCount int    `json:"unreadCount"`
	Badge       string `json:"badge"`
	Show        bool   `json:"show"`
}

func (cmd *BadgeCmd) run(_ context.Context, c *cli.Command) error {
	snap := cmd.app.Center.Snapshot()
	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, badgeJSON{
			UnreadCount: snap.UnreadCount,
			Badge:       snap.Badge,
			Show:        snap.ShowBadge,
		})
	}

	if snap.ShowBadge {
		_, _ = fmt.Fprintln(out, snap.Badge)
	}
	return nil
}
