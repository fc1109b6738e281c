package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/dashbell/internal/bell"
	"github.com/colonyops/dashbell/internal/core/notify"
	"github.com/colonyops/dashbell/internal/core/styles"
	"github.com/colonyops/dashbell/pkg/iojson"
)

type CatalogCmd struct {
	flags  *Flags
	format string

	// now is the clock used to reject future timestamps.
	now func() time.Time
}

// NewCatalogCmd creates a new catalog command. It needs only the loaded
// config, so it runs even when the configured catalog is broken.
func NewCatalogCmd(flags *Flags) *CatalogCmd {
	return &CatalogCmd{flags: flags, now: time.Now}
}

// Register adds the catalog command group to the application
func (cmd *CatalogCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "catalog",
		Usage: "Notification catalog commands",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate a catalog file",
				UsageText: "dashbell catalog validate [FILE] [--format json]",
				Description: `Loads a YAML catalog and reports every invalid entry by field.
Without FILE, the configured catalog (or the built-in one) is checked.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
		},
	})

	return app
}

type catalogIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *CatalogCmd) runValidate(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	v := bell.Validator(cfg, cmd.now)

	source := c.Args().First()
	if source == "" {
		source = cfg.CatalogPath()
	}

	var (
		catalog *notify.Catalog
		err     error
	)
	if source == "" {
		source = bell.SourceBuiltin
		catalog, err = notify.SeedCatalog(v)
	} else {
		catalog, err = bell.LoadCatalogFile(source, v)
	}

	count := 0
	if catalog != nil {
		count = catalog.Len()
	}

	issues, fatal := catalogIssues(err)
	if fatal != nil {
		return fatal
	}

	if cmd.format == "json" {
		if len(issues) > 0 {
			_ = iojson.WriteError(os.Stderr, "catalog is invalid", map[string]any{
				"source": source,
				"errors": issues,
			})
			return cli.Exit("", 1)
		}
		return iojson.WriteWith(c.Root().Writer, os.Stderr, map[string]any{
			"valid":   true,
			"source":  source,
			"entries": count,
		})
	}

	w := c.Root().Writer
	if len(issues) == 0 {
		_, _ = fmt.Fprintf(w, "%s %s: %d notification(s)\n",
			styles.TextSuccessStyle.Render(styles.IconCheck), source, count)
		return nil
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", styles.TextErrorStyle.Render(styles.IconCross), source)
	for _, issue := range issues {
		_, _ = fmt.Fprintf(w, "  %s %s\n", styles.TextForegroundBoldStyle.Render(issue.Field), issue.Message)
	}
	return cli.Exit("", 1)
}

// catalogIssues flattens field errors into issues. Errors that are not
// field errors (unreadable file, malformed YAML) are returned as fatal.
func catalogIssues(err error) ([]catalogIssue, error) {
	if err == nil {
		return nil, nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}

	issues := make([]catalogIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, catalogIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues, nil
}
