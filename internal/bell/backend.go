package bell

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/colonyops/dashbell/internal/core/config"
	"github.com/colonyops/dashbell/internal/core/kv"
	"github.com/colonyops/dashbell/internal/data/db"
	"github.com/colonyops/dashbell/internal/data/stores"
	"github.com/colonyops/dashbell/internal/store/jsonfile"
	"github.com/colonyops/dashbell/internal/store/redisstore"
	"github.com/rs/zerolog"
)

// redisPingTimeout bounds the startup connectivity probe.
const redisPingTimeout = 2 * time.Second

// Backend is an opened kv.KV together with its cleanup.
type Backend struct {
	Name  string
	Store kv.KV
	close func() error
}

// Close releases resources held by the backend.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend opens the storage backend selected by cfg.Storage.Backend.
//
// A corrupt SQLite file or JSON document is moved aside and recreated. An unreachable Redis
// server is logged but not fatal: reads then degrade to an empty read set.
func OpenBackend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return openSQLite(cfg, logger)
	case config.BackendFile:
		return openFile(cfg, logger)
	case config.BackendMemory:
		return &Backend{Name: config.BackendMemory, Store: kv.NewMemory()}, nil
	case config.BackendRedis:
		return openRedis(ctx, cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func openSQLite(cfg *config.Config, logger zerolog.Logger) (*Backend, error) {
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err != nil && stores.IsCorruptionError(err) {
		logger.Warn().Err(err).Str("data_dir", cfg.DataDir).Msg("database corrupt, moving it aside")
		if rerr := stores.RecoverFromCorruption(cfg.DataDir); rerr != nil {
			return nil, fmt.Errorf("recover database: %w", rerr)
		}
		database, err = db.Open(cfg.DataDir, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Backend{
		Name:  config.BackendSQLite,
		Store: stores.NewKVStore(database),
		close: database.Close,
	}, nil
}

func openFile(cfg *config.Config, logger zerolog.Logger) (*Backend, error) {
	store := jsonfile.NewKVStore(filepath.Join(cfg.DataDir, jsonfile.FileName))

	if err := store.Check(); errors.Is(err, jsonfile.ErrCorrupt) {
		backup, merr := store.MoveAside()
		if merr != nil {
			return nil, fmt.Errorf("recover kv document: %w", merr)
		}
		logger.Warn().Err(err).Str("backup", backup).Msg("kv document corrupt, moved it aside")
	}

	return &Backend{Name: config.BackendFile, Store: store}, nil
}

func openRedis(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *Backend {
	store := redisstore.New(redisstore.Options{
		Addr:     cfg.Storage.Redis.Addr,
		Password: cfg.Storage.Redis.Password,
		DB:       cfg.Storage.Redis.DB,
		Prefix:   cfg.Storage.Redis.Prefix,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Storage.Redis.Addr).Msg("redis unreachable, read state will not persist")
	}

	return &Backend{
		Name:  config.BackendRedis,
		Store: store,
		close: store.Close,
	}
}
