package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/reglet-dev/contract-sdk/application/config"
	"github.com/reglet-dev/contract-sdk/application/validation"
	"github.com/reglet-dev/contract-sdk/host"
	"github.com/reglet-dev/contract-sdk/infrastructure/sqlitehost"
	"github.com/reglet-dev/contract-sdk/log"
	"github.com/reglet-dev/contract-sdk/metrics"
	"github.com/reglet-dev/contract-sdk/query/engine"
)

// env is everything one command invocation needs to reach a contract.
type env struct {
	cfg       *config.HostConfig
	logger    *slog.Logger
	db        *sqlitehost.DB
	executor  *host.Executor
	collector *metrics.Collector
}

// setup loads the config and opens the state database. dbPath overrides the
// configured SQLite path when set.
func setup(ctx context.Context, configPath, dbPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.SQLitePath = dbPath
	}
	logger := cfg.NewLogger(os.Stderr)

	db, err := sqlitehost.Open(cfg.SQLitePath, sqlitehost.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	services, err := sqlitehost.NewHost(db, log.NewSlogLogger(logger),
		engine.WithCacheSize(cfg.CacheSize),
		engine.WithMaxDepth(cfg.MaxQueryDepth),
		engine.WithLogger(logger),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	validator, err := validation.NewAbiValidator()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	collector := metrics.New(metrics.DefaultNamespace)
	executor, err := host.NewExecutor(ctx, services,
		host.WithLogger(logger),
		host.WithModuleName(cfg.ModuleName),
		host.WithMaxRequestSize(cfg.MaxRequestSize),
		host.WithMiddleware(collector.HostMiddleware()),
		host.WithAbiValidator(validator),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, db: db, executor: executor, collector: collector}, nil
}

func (e *env) load(ctx context.Context, wasmPath string) (*host.Instance, error) {
	wasm, err := os.ReadFile(wasmPath)
	if err != nil {
		return nil, fmt.Errorf("read contract: %w", err)
	}
	inst, err := e.executor.LoadContract(ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", wasmPath, err)
	}
	e.logger.DebugContext(ctx, "contract loaded", slog.String("contract", inst.Name()), slog.String("path", wasmPath))
	return inst, nil
}

func (e *env) close(ctx context.Context) {
	if path := e.cfg.MetricsFile; path != "" {
		if err := e.collector.WriteToTextfile(path); err != nil {
			e.logger.WarnContext(ctx, "write metrics", slog.String("path", path), slog.Any("error", err))
		}
	}
	if err := e.executor.Close(ctx); err != nil {
		e.logger.WarnContext(ctx, "close executor", slog.Any("error", err))
	}
	if err := e.db.Close(); err != nil {
		e.logger.WarnContext(ctx, "close state db", slog.Any("error", err))
	}
}
