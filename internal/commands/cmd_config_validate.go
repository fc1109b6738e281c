package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/dashbell/internal/core/config"
	"github.com/colonyops/dashbell/internal/core/styles"
	"github.com/colonyops/dashbell/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "dashbell config validate [options]",
				Description: "Validates the configuration file, checking storage settings, category lists, and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type configIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	issues := configIssues(cfg.ValidateDeep(cmd.flags.ConfigPath))
	warnings := cfg.Warnings()

	if cmd.format == "json" {
		return cmd.outputJSON(c, issues, warnings)
	}

	return cmd.outputText(c, issues, warnings)
}

func configIssues(err error) []configIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []configIssue{{Field: "config", Message: err.Error()}}
	}

	issues := make([]configIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, configIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}

func (cmd *ConfigValidateCmd) outputJSON(c *cli.Command, issues []configIssue, warnings []config.ValidationWarning) error {
	out := struct {
		Valid    bool                       `json:"valid"`
		Errors   []configIssue              `json:"errors,omitempty"`
		Warnings []config.ValidationWarning `json:"warnings,omitempty"`
	}{
		Valid:    len(issues) == 0,
		Errors:   issues,
		Warnings: warnings,
	}

	if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
		return err
	}

	if len(issues) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(c *cli.Command, issues []configIssue, warnings []config.ValidationWarning) error {
	w := c.Root().Writer

	for _, warn := range warnings {
		label := warn.Category
		if warn.Item != "" {
			label += " " + warn.Item
		}
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.TextWarningStyle.Render(styles.IconWarn), label, warn.Message)
	}

	for _, issue := range issues {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.TextErrorStyle.Render(styles.IconCross), issue.Field, issue.Message)
	}

	if len(issues) == 0 {
		_, _ = fmt.Fprintf(w, "%s Configuration is valid\n", styles.TextSuccessStyle.Render(styles.IconCheck))
		return nil
	}

	_, _ = fmt.Fprintf(w, "\n%d error(s) found\n", len(issues))
	return cli.Exit("", 1)
}
