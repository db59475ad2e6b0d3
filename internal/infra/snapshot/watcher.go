package snapshot

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"pogomcp/internal/domain"
)

const defaultInvalidateDebounce = 200 * time.Millisecond

// Invalidator is the cache surface the watcher drives.
type Invalidator interface {
	Invalidate(category domain.Category) error
}

// Watcher observes the snapshot directory and invalidates a category when the
// collector rewrites its file, so the next access reloads immediately instead
// of waiting out the freshness window. Deletions are deliberately ignored: a
// vanished file must not drop a still-servable snapshot.
type Watcher struct {
	logger   *zap.Logger
	dir      string
	target   Invalidator
	debounce time.Duration
}

func NewWatcher(dir string, target Invalidator, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		logger:   logger.Named("snapshot_watcher"),
		dir:      dir,
		target:   target,
		debounce: defaultInvalidateDebounce,
	}
}

// Run blocks until ctx ends. Watch setup failure is returned; per-event
// failures are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return domain.Wrap(domain.CodeUnavailable, "watcher.run", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return domain.E(domain.CodeUnavailable, "watcher.run", "watch "+w.dir, err)
	}
	w.logger.Info("watching snapshot directory", zap.String("dir", w.dir))

	pending := make(map[domain.Category]struct{})
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-watcher.Errors:
			if err != nil {
				w.logger.Warn("snapshot watcher error", zap.Error(err))
			}
		case event := <-watcher.Events:
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			category, ok := domain.CategoryForFile(filepath.Base(event.Name))
			if !ok {
				continue
			}
			pending[category] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case <-timerChan(timer):
			timer = nil
			for category := range pending {
				if err := w.target.Invalidate(category); err != nil {
					w.logger.Warn("invalidate after file change failed",
						zap.String("category", category.String()),
						zap.Error(err),
					)
					continue
				}
				w.logger.Info("snapshot file changed, cache invalidated",
					zap.String("category", category.String()),
				)
			}
			clear(pending)
		}
	}
}

func timerChan(timer *time.Timer) <-chan time.Time {
	if timer == nil {
		return nil
	}
	return timer.C
}
