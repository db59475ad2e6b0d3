package datacache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"pogomcp/internal/domain"
)

// Loader reads one category's snapshot from the snapshot store.
type Loader interface {
	Load(ctx context.Context, category domain.Category) (domain.Snapshot, error)
}

// entry is the per-category cache state. Each entry has its own lock so one
// category's slow or failing reload never blocks another category.
type entry struct {
	mu       sync.Mutex
	snap     domain.Snapshot
	loadedAt time.Time
	loaded   bool
}

// Cache holds one snapshot per category and decides, per access, whether to
// serve it from memory or reread the snapshot store.
//
// The resilience contract: a reload failure while a previous snapshot is held
// degrades freshness, never availability. The stale snapshot is served with
// its loadedAt untouched, so every subsequent access retries the store until
// one succeeds.
type Cache struct {
	loader  Loader
	window  time.Duration
	logger  *zap.Logger
	metrics domain.Metrics
	now     func() time.Time

	entries map[domain.Category]*entry
}

type Option func(*Cache)

// WithNow substitutes the wall clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMetrics attaches cache metrics.
func WithMetrics(metrics domain.Metrics) Option {
	return func(c *Cache) {
		if metrics != nil {
			c.metrics = metrics
		}
	}
}

// NewCache creates an empty cache for the full category set. A window of zero
// or less falls back to the 24h default.
func NewCache(loader Loader, window time.Duration, logger *zap.Logger, opts ...Option) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if window <= 0 {
		window = domain.DefaultFreshnessWindow
	}

	entries := make(map[domain.Category]*entry, len(domain.Categories()))
	for _, cat := range domain.Categories() {
		entries[cat] = &entry{}
	}

	cache := &Cache{
		loader:  loader,
		window:  window,
		logger:  logger.Named("datacache"),
		metrics: domain.NopMetrics(),
		now:     time.Now,
		entries: entries,
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Get returns the category's current snapshot, reloading from the store when
// the entry is empty or its age has reached the freshness window. Exactly at
// the window boundary counts as stale.
func (c *Cache) Get(ctx context.Context, category domain.Category) (domain.Snapshot, error) {
	e, ok := c.entries[category]
	if !ok {
		return domain.Snapshot{}, domain.E(domain.CodeInvalidArgument, "cache.get",
			"unknown category "+category.String(), domain.ErrInvalidCategory)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := c.now()
	if e.loaded && now.Sub(e.loadedAt) < c.window {
		return e.snap, nil
	}

	wallStart := time.Now()
	snap, err := c.loader.Load(ctx, category)
	duration := time.Since(wallStart)
	if err != nil {
		c.metrics.ObserveSnapshotLoad(category, domain.LoadOutcomeFailure, duration)
		if e.loaded {
			// Degraded success: keep serving the last good snapshot and leave
			// loadedAt alone so the next access retries.
			c.logger.Warn("snapshot reload failed, serving stale data",
				zap.String("category", category.String()),
				zap.Duration("age", now.Sub(e.loadedAt)),
				zap.Error(err),
			)
			c.metrics.ObserveStaleServed(category)
			return e.snap, nil
		}
		c.logger.Error("snapshot load failed with nothing cached",
			zap.String("category", category.String()),
			zap.Error(err),
		)
		return domain.Snapshot{}, domain.E(domain.CodeNotFound, "cache.get",
			fmt.Sprintf("no data loaded for %s: %v", category, err), domain.ErrNoData)
	}

	e.snap = snap
	e.loadedAt = c.now()
	e.loaded = true

	c.metrics.ObserveSnapshotLoad(category, domain.LoadOutcomeSuccess, duration)
	c.metrics.SetSnapshotItems(category, snap.Count)
	c.logger.Info("snapshot loaded",
		zap.String("category", category.String()),
		zap.Int("items", snap.Count),
	)
	return e.snap, nil
}

// Invalidate resets one category's entry to empty, forcing the next Get to
// reload regardless of freshness. When an invalidation races an in-flight
// reload the entry lock serializes them and the later writer wins.
func (c *Cache) Invalidate(category domain.Category) error {
	e, ok := c.entries[category]
	if !ok {
		return domain.E(domain.CodeInvalidArgument, "cache.invalidate",
			"unknown category "+category.String(), domain.ErrInvalidCategory)
	}

	e.mu.Lock()
	e.snap = domain.Snapshot{}
	e.loadedAt = time.Time{}
	e.loaded = false
	e.mu.Unlock()

	c.metrics.ObserveInvalidation(category)
	c.logger.Info("cache entry invalidated", zap.String("category", category.String()))
	return nil
}

// InvalidateAll resets every category's entry.
func (c *Cache) InvalidateAll() {
	for _, cat := range domain.Categories() {
		_ = c.Invalidate(cat)
	}
}

// Status reports every entry without touching the snapshot store.
func (c *Cache) Status() []domain.CategoryStatus {
	now := c.now()
	statuses := make([]domain.CategoryStatus, 0, len(domain.Categories()))
	for _, cat := range domain.Categories() {
		e := c.entries[cat]
		e.mu.Lock()
		status := domain.CategoryStatus{
			Category: cat,
			Loaded:   e.loaded,
		}
		if e.loaded {
			status.Count = e.snap.Count
			status.LoadedAt = e.loadedAt
			status.Age = now.Sub(e.loadedAt)
		}
		e.mu.Unlock()
		statuses = append(statuses, status)
	}
	return statuses
}
