package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "git.home.luguber.info/inful/mdpress/internal/errors"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestNewRequiresWatchableDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.True(t, apperrors.IsCategory(err, apperrors.CategoryEnvironment))
}

func TestNewSkipsMissingDirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{filepath.Join(dir, "missing"), dir})
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestChangeTriggersRebuild(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir}, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var builds atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func() error {
			builds.Add(1)
			return nil
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "post.md"), []byte("# Hi"), 0o644))

	assert.True(t, waitFor(t, 2*time.Second, func() bool { return builds.Load() == 1 }),
		"expected exactly one rebuild, got %d", builds.Load())

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestBurstCoalescesIntoOneRebuild(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir}, WithDebounce(100*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var builds atomic.Int32
	go func() {
		_ = w.Run(ctx, func() error {
			builds.Add(1)
			return nil
		})
	}()

	// Several changes inside one debounce window.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "post.md"), []byte("# Hi"), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	require.True(t, waitFor(t, 2*time.Second, func() bool { return builds.Load() >= 1 }))
	// Let any stragglers fire, then confirm the burst collapsed.
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load())
}

func TestRebuildErrorDoesNotStopLoop(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir}, WithDebounce(30*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var builds atomic.Int32
	go func() {
		_ = w.Run(ctx, func() error {
			builds.Add(1)
			return assert.AnError
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("a"), 0o644))
	require.True(t, waitFor(t, 2*time.Second, func() bool { return builds.Load() == 1 }))

	// The loop must survive the failed rebuild and pick up the next change.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("b"), 0o644))
	assert.True(t, waitFor(t, 2*time.Second, func() bool { return builds.Load() == 2 }))
}
