package app

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"pogomcp/internal/domain"
	"pogomcp/internal/infra/datacache"
	"pogomcp/internal/infra/gateway"
	"pogomcp/internal/infra/snapshot"
	"pogomcp/internal/infra/telemetry"
)

// App wires the snapshot store, cache, facade, and MCP gateway.
type App struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{logger: logger.Named("app")}
}

// Serve runs the MCP server over stdio until ctx ends. The snapshot watcher
// and the observability HTTP server run alongside it; neither is allowed to
// take the tool surface down with it.
func (a *App) Serve(ctx context.Context, cfg Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewPrometheusMetrics(registry)

	store := snapshot.NewStore(cfg.DataDir, a.logger)
	cache := datacache.NewCache(store, cfg.FreshnessWindow, a.logger, datacache.WithMetrics(metrics))
	provider := NewProvider(cache)

	if cfg.WatchDataDir {
		watcher := snapshot.NewWatcher(store.Dir(), cache, a.logger)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				a.logger.Warn("snapshot watcher stopped", zap.Error(err))
			}
		}()
	}

	go func() {
		err := telemetry.StartHTTPServer(ctx, telemetry.HTTPServerOptions{
			Addr:          cfg.Observability.ListenAddress,
			EnableMetrics: cfg.Observability.EnableMetrics,
			EnableHealthz: cfg.Observability.EnableHealthz,
			Status:        provider,
			Registry:      registry,
		}, a.logger)
		if err != nil {
			a.logger.Error("observability server failed", zap.Error(err))
		}
	}()

	a.logger.Info("serving MCP over stdio",
		zap.String("dataDir", cfg.DataDir),
		zap.Duration("freshnessWindow", cfg.FreshnessWindow),
	)
	return gateway.New(provider, a.logger).Run(ctx)
}

// Check loads every category once and reports what the snapshot store holds.
// Missing files are tolerated (the collector may not have run yet); anything
// malformed fails the check.
func (a *App) Check(ctx context.Context, cfg Config) error {
	store := snapshot.NewStore(cfg.DataDir, a.logger)

	var errs []error
	for _, cat := range domain.Categories() {
		snap, err := store.Load(ctx, cat)
		if err != nil {
			if code, ok := domain.CodeFrom(err); ok && code == domain.CodeNotFound {
				a.logger.Warn("snapshot file missing",
					zap.String("category", cat.String()),
					zap.String("file", cat.Filename()),
				)
				continue
			}
			a.logger.Error("snapshot check failed",
				zap.String("category", cat.String()),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}
		a.logger.Info("snapshot ok",
			zap.String("category", cat.String()),
			zap.Int("items", snap.Count),
		)
	}
	return errors.Join(errs...)
}
