// Package bell wires configuration, storage, and the notification center
// into the App that commands and the TUI consume.
package bell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/dashbell/internal/core/config"
	"github.com/colonyops/dashbell/internal/core/kv"
	"github.com/colonyops/dashbell/internal/core/logging"
	"github.com/colonyops/dashbell/internal/core/notify"
	"github.com/rs/zerolog"
)

// App is the central entry point for all dashbell operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Center  *notify.Center
	Doctor  *DoctorService
	Config  *config.Config
	Store   kv.KV
	ReadIDs *notify.KVReadIDStore

	// CatalogSource describes where the catalog was loaded from.
	CatalogSource string

	closers []func() error
}

// Options tune Open. Zero values use the wall clock and a no-op logger.
type Options struct {
	Logger zerolog.Logger
	Now    func() time.Time
}

// Open builds an App from cfg: it opens the configured storage backend,
// loads the catalog, and initializes the notification center.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	backend, err := OpenBackend(ctx, cfg, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	catalog, source, err := LoadCatalog(cfg, opts.Now)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	app := NewApp(cfg, backend, catalog, source, opts)
	if err := app.Center.Init(ctx); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("init notifications: %w", err)
	}

	return app, nil
}

// NewApp constructs an App from explicit dependencies. The center is not
// initialized.
func NewApp(cfg *config.Config, backend *Backend, catalog *notify.Catalog, source string, opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	readIDs := notify.NewKVReadIDStore(
		backend.Store,
		cfg.Storage.Profile,
		cfg.Storage.Key,
		logging.ComponentFrom(opts.Logger, "storage").With().Str("backend", backend.Name).Logger(),
	)

	center := notify.NewCenter(catalog, readIDs,
		notify.WithDisplayLimit(cfg.Display.Limit),
		notify.WithClock(opts.Now),
		notify.WithLogger(logging.ComponentFrom(opts.Logger, "notify")),
	)

	return &App{
		Center:        center,
		Doctor:        NewDoctorService(cfg, backend, readIDs, center, source),
		Config:        cfg,
		Store:         backend.Store,
		ReadIDs:       readIDs,
		CatalogSource: source,
		closers:       []func() error{backend.Close},
	}
}

// Close releases the storage backend.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
