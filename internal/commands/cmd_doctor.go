package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/colonyops/dashbell/internal/core/doctor"
	"github.com/colonyops/dashbell/internal/core/styles"
	"github.com/colonyops/dashbell/internal/bell"
	"github.com/colonyops/dashbell/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type DoctorCmd struct {
	flags   *Flags
	app     *bell.App
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags, app *bell.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your dashbell setup",
		UsageText:   "dashbell doctor [options]",
		Description: "Runs diagnostic checks on configuration, read-state storage, and the notification catalog.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "automatically fix issues (e.g., reset a corrupt read-state value)",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := cmd.app.Doctor.RunChecks(ctx, cmd.flags.ConfigPath, cmd.autofix)

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(c, results)
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	report := doctor.NewReport(results)
	if err := iojson.WriteWith(c.Root().Writer, os.Stderr, report); err != nil {
		return err
	}
	if !report.Healthy {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) outputText(c *cli.Command, results []doctor.Result) error {
	w := c.Root().Writer
	divider := styles.TextMutedStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.TextPrimaryBoldStyle.Render(styles.IconBell + " dashbell doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.TextForegroundBoldStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.TextMutedStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.TextSuccessStyle.Render(styles.IconCheck)
			case doctor.StatusWarn:
				icon = styles.TextWarningStyle.Render(styles.IconWarn)
			case doctor.StatusFail:
				icon = styles.TextErrorStyle.Render(styles.IconCross)
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	report := doctor.NewReport(results)
	counts := report.Summary
	summary := fmt.Sprintf("%s  %s  %s",
		styles.TextSuccessStyle.Render(fmt.Sprintf("%d passed", counts.Passed)),
		styles.TextWarningStyle.Render(fmt.Sprintf("%d warnings", counts.Warned)),
		styles.TextErrorStyle.Render(fmt.Sprintf("%d failed", counts.Failed)),
	)
	_, _ = fmt.Fprintln(w, summary)

	if !cmd.autofix && counts.Fixable > 0 {
		_, _ = fmt.Fprintln(w)
		hint := styles.TextMutedStyle.Render(fmt.Sprintf("Run 'dashbell doctor --autofix' to fix %d issue(s)", counts.Fixable))
		_, _ = fmt.Fprintln(w, hint)
	}

	if !report.Healthy {
		return cli.Exit("", 1)
	}

	return nil
}
