package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/dashbell/internal/bell"
	"github.com/colonyops/dashbell/internal/core/notify"
	"github.com/colonyops/dashbell/internal/core/styles"
	"github.com/colonyops/dashbell/internal/core/validate"
	"github.com/colonyops/dashbell/pkg/iojson"
)

type ReadCmd struct {
	flags *Flags
	app   *bell.App

	all        bool
	yes        bool
	jsonOutput bool
	input      iojson.FileReader[[]string]

	// confirm asks before marking everything read. Replaced in tests.
	confirm func(unread int) (bool, error)
}

// NewReadCmd creates a new read command
func NewReadCmd(flags *Flags, app *bell.App) *ReadCmd {
	cmd := &ReadCmd{flags: flags, app: app}
	cmd.confirm = cmd.confirmForm
	return cmd
}

// Register adds the read command to the application
func (cmd *ReadCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "read",
		Usage:     "Mark notifications as read",
		UsageText: "dashbell read [ID...] [--all] [--json]",
		Description: `Marks the given notification IDs as read. IDs that are not in the catalog
are recorded anyway and reported on stderr.

Without arguments, a JSON array of IDs is read from --file or stdin.
--all marks every catalog entry; it asks for confirmation on a terminal
unless --yes is given.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "mark every notification as read",
				Destination: &cmd.all,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt for --all",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output mark-as-read responses as JSON",
				Destination: &cmd.jsonOutput,
			},
			cmd.input.Flag(),
		},
		ShellComplete: NotificationIDCompleter(cmd.app, true),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ReadCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.all {
		return cmd.runAll(ctx, c)
	}

	ids := c.Args().Slice()
	if len(ids) == 0 {
		read, err := cmd.input.Read()
		if err != nil {
			return fmt.Errorf("read ids: %w", err)
		}
		ids = read
	}

	if len(ids) == 0 {
		return fmt.Errorf("no notification ids given")
	}

	for i, id := range ids {
		if err := validate.NotificationIDField(fmt.Sprintf("ids[%d]", i), id); err != nil {
			return err
		}
	}

	center := cmd.app.Center
	responses := make([]notify.MarkAsReadResponse, 0, len(ids))
	for _, id := range ids {
		if _, ok := center.Lookup(id); !ok {
			_, _ = fmt.Fprintln(os.Stderr, styles.TextWarningStyle.Render(
				fmt.Sprintf("%s %s is not in the catalog; recorded anyway", styles.IconWarn, id)))
		}
		responses = append(responses, center.Acknowledge(ctx, id))
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, responses)
	}

	_, _ = fmt.Fprintf(out, "%s Marked %d notification(s) as read; %d unread\n",
		styles.TextSuccessStyle.Render(styles.IconCheck), len(responses), center.UnreadCount())
	return nil
}

func (cmd *ReadCmd) runAll(ctx context.Context, c *cli.Command) error {
	center := cmd.app.Center
	out := c.Root().Writer

	unread := center.UnreadCount()
	if unread == 0 {
		if cmd.jsonOutput {
			return iojson.WriteWith(out, os.Stderr, []notify.MarkAsReadResponse{})
		}
		_, _ = fmt.Fprintln(out, styles.TextMutedStyle.Render("All caught up"))
		return nil
	}

	if !cmd.yes && isTerminal(os.Stdin) {
		ok, err := cmd.confirm(unread)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			return nil
		}
	}

	responses := center.AcknowledgeAll(ctx)

	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, responses)
	}

	_, _ = fmt.Fprintf(out, "%s Marked %d notification(s) as read\n",
		styles.TextSuccessStyle.Render(styles.IconCheck), len(responses))
	return nil
}

func (cmd *ReadCmd) confirmForm(unread int) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Mark %d unread notification(s) as read?", unread)).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(styles.FormTheme()).Run()
	return ok, err
}
