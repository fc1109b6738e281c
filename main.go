package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/dashbell/internal/bell"
	"github.com/colonyops/dashbell/internal/commands"
	"github.com/colonyops/dashbell/internal/core/config"
	"github.com/colonyops/dashbell/internal/core/logging"
	"github.com/colonyops/dashbell/internal/core/styles"
	"github.com/colonyops/dashbell/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

// standalone lists commands that only need the loaded config. They run
// even when storage or the catalog cannot be opened.
var standalone = map[string]bool{
	"config":  true,
	"catalog": true,
}

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		bellApp   = &bell.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "dashbell",
		Usage:     "Dashboard notification bell",
		UsageText: "dashbell [global options] command [command options]",
		Description: `dashbell tracks which dashboard notifications you have read.

Read state is persisted as a set of notification IDs in the configured
storage backend (sqlite, file, memory, or redis) and merged with the
notification catalog to compute the unread badge.

Run 'dashbell' with no arguments to open the interactive bell panel.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("DASHBELL_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/dashbell.log)",
				Sources:     cli.EnvVars("DASHBELL_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("DASHBELL_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("DASHBELL_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Always log to a file; use explicit path or default to <datadir>/dashbell.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			if cfg.Storage.Profile != "" {
				ctx = logging.WithProfile(ctx, cfg.Storage.Profile)
			}

			if standalone[c.Args().First()] {
				return ctx, nil
			}

			opened, err := bell.Open(ctx, cfg, bell.Options{Logger: log.Logger})
			if err != nil {
				return ctx, err
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*bellApp = *opened

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if err := bellApp.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close storage")
				return err
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, bellApp)

	app = commands.NewLsCmd(flags, bellApp).Register(app)
	app = commands.NewBadgeCmd(flags, bellApp).Register(app)
	app = commands.NewTopCmd(flags, bellApp).Register(app)
	app = commands.NewReadCmd(flags, bellApp).Register(app)
	app = commands.NewShowCmd(flags, bellApp).Register(app)
	app = commands.NewDoctorCmd(flags, bellApp).Register(app)
	app = commands.NewCatalogCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)
	app = tuiCmd.Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'dashbell --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
