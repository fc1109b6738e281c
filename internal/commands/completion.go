package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/dashbell/internal/bell"
	"github.com/urfave/cli/v3"
)

// NotificationIDCompleter returns a ShellCompleteFunc that suggests catalog
// notification IDs as positional completions. When unread is true, only
// unread notifications are suggested.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func NotificationIDCompleter(app *bell.App, unread bool) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if app.Center == nil {
			return
		}

		w := cmd.Root().Writer
		for _, n := range app.Center.Notifications() {
			if unread && n.IsRead {
				continue
			}
			_, _ = fmt.Fprintf(w, "%s:%s\n", n.ID, n.Title)
		}
	}
}
