package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/dashbell/internal/bell"
	"github.com/colonyops/dashbell/internal/core/notify"
	"github.com/colonyops/dashbell/internal/core/styles"
)

const showWordWrap = 80

type ShowCmd struct {
	flags *Flags
	app   *bell.App

	plain bool
	mark  bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *bell.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show a single notification",
		UsageText: "dashbell show ID [--plain] [--mark]",
		Description: `Prints a notification with its message rendered as markdown.
Rendering is skipped when stdout is not a terminal or --plain is set.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "print the raw message without markdown rendering",
				Destination: &cmd.plain,
			},
			&cli.BoolFlag{
				Name:        "mark",
				Aliases:     []string{"m"},
				Usage:       "mark the notification as read after showing it",
				Destination: &cmd.mark,
			},
		},
		ShellComplete: NotificationIDCompleter(cmd.app, false),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one notification id")
	}

	id := c.Args().First()
	n, ok := cmd.app.Center.Lookup(id)
	if !ok {
		return fmt.Errorf("notification %q not found", id)
	}

	out := c.Root().Writer
	styled := !cmd.plain && isTerminal(out)

	_, _ = fmt.Fprintln(out, cmd.header(n, styled))
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderMessage(n.Message, styled))

	if cmd.mark && !n.IsRead {
		cmd.app.Center.MarkAsRead(ctx, n.ID)
	}

	return nil
}

func (cmd *ShowCmd) header(n notify.Notification, styled bool) string {
	when := notify.FormatRelativeTime(n.Timestamp, cmd.app.Center.Now())
	status := statusWord(n.IsRead)

	if !styled {
		return fmt.Sprintf("%s\n%s · %s · %s", n.Title, n.Category, when, status)
	}

	icon := styles.UnreadDotStyle.Render(styles.IconUnread)
	if n.IsRead {
		icon = styles.ReadDotStyle.Render(styles.IconRead)
	}

	return fmt.Sprintf("%s %s\n%s %s %s",
		icon,
		styles.TextPrimaryBoldStyle.Render(n.Title),
		styles.CategoryStyle(string(n.Category)).Render(string(n.Category)),
		styles.TextMutedStyle.Render("· "+when+" ·"),
		styles.TextMutedStyle.Render(status),
	)
}

// renderMessage renders markdown when styled, falling back to the raw
// message if glamour fails.
func renderMessage(message string, styled bool) string {
	message = strings.TrimSpace(message)
	if !styled {
		return message
	}

	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(showWordWrap),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		return message
	}

	rendered, err := renderer.Render(message)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return message
	}

	return strings.TrimSpace(rendered)
}
