package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/dashbell/internal/bell"
	"github.com/colonyops/dashbell/internal/core/logging"
	"github.com/colonyops/dashbell/internal/tui"
	"github.com/colonyops/dashbell/pkg/profiler"
)

type TuiCmd struct {
	flags *Flags
	app   *bell.App

	inline bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *bell.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("DASHBELL_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
		&cli.BoolFlag{
			Name:        "inline",
			Usage:       "render the bell panel inline instead of in the alternate screen",
			Sources:     cli.EnvVars("DASHBELL_INLINE"),
			Destination: &cmd.inline,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "tui",
		Usage:  "Open the interactive bell panel",
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	log := logging.Component("tui")

	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort, logging.Component("profiler"))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	model := tui.New(ctx, tui.Opts{
		Center:      cmd.app.Center,
		Keybindings: cmd.app.Config.Keybindings,
		Logger:      &log,
	})

	var opts []tea.ProgramOption
	if !cmd.inline {
		opts = append(opts, tea.WithAltScreen())
	}
	opts = append(opts, tea.WithContext(ctx))

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
