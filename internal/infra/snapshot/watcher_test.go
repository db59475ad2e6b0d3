package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pogomcp/internal/domain"
)

type recordingInvalidator struct {
	mu         sync.Mutex
	categories []domain.Category
}

func (r *recordingInvalidator) Invalidate(category domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = append(r.categories, category)
	return nil
}

func (r *recordingInvalidator) seen() []domain.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out
}

func TestWatcherInvalidatesOnFileWrite(t *testing.T) {
	dir := t.TempDir()
	target := &recordingInvalidator{}

	watcher := NewWatcher(dir, target, zap.NewNop())
	watcher.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = watcher.Run(ctx)
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	require.Eventually(t, func() bool {
		for _, cat := range target.seen() {
			if cat == domain.CategoryEvents {
				return true
			}
		}
		return false
	}, 5*time.Second, 20*time.Millisecond)

	for _, cat := range target.seen() {
		require.Equal(t, domain.CategoryEvents, cat)
	}

	cancel()
	<-done
}

func TestWatcherMissingDir(t *testing.T) {
	target := &recordingInvalidator{}
	watcher := NewWatcher(filepath.Join(t.TempDir(), "missing"), target, zap.NewNop())

	err := watcher.Run(context.Background())
	require.Error(t, err)
}
