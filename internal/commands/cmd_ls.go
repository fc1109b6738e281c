package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/dashbell/internal/bell"
	"github.com/colonyops/dashbell/internal/core/notify"
	"github.com/colonyops/dashbell/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *bell.App

	// flags
	jsonOutput bool
	unread     bool
	categories []string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *bell.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List notifications",
		UsageText: "dashbell ls [--json] [--unread] [--category PATTERN]...",
		Description: `Displays every notification in the catalog, newest first, with read state applied.

--category accepts glob patterns (e.g. "pay*" or "{alert,system}") and may be repeated.
Use --json for the feed response format.`,
		// Brace patterns contain commas, so values are never split.
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the feed response as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "unread",
				Aliases:     []string{"u"},
				Usage:       "only list unread notifications",
				Destination: &cmd.unread,
			},
			&cli.StringSliceFlag{
				Name:        "category",
				Usage:       "filter by category glob pattern",
				Destination: &cmd.categories,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(_ context.Context, c *cli.Command) error {
	list, err := filterList(cmd.app.Center.Notifications(), cmd.categories, cmd.unread)
	if err != nil {
		return err
	}
	list = notify.TopByRecency(list, len(list))

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, notify.NewFeedResponse(list))
	}

	if len(list) == 0 {
		_, _ = fmt.Fprintln(os.Stderr, "No notifications found")
		return nil
	}

	now := cmd.app.Center.Now()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tCATEGORY\tTITLE\tRECEIVED")
	for _, n := range list {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			n.ID, statusWord(n.IsRead), n.Category, n.Title, notify.FormatRelativeTime(n.Timestamp, now))
	}

	return w.Flush()
}

// filterList applies the category glob patterns and the unread filter.
func filterList(list []notify.Notification, patterns []string, unread bool) ([]notify.Notification, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid category pattern %q", p)
		}
	}

	if unread {
		list = notify.UnreadOnly(list)
	}

	if len(patterns) == 0 {
		return list, nil
	}

	out := make([]notify.Notification, 0, len(list))
	for _, n := range list {
		if matchCategory(patterns, string(n.Category)) {
			out = append(out, n)
		}
	}
	return out, nil
}

func matchCategory(patterns []string, category string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, category); ok {
			return true
		}
	}
	return false
}
