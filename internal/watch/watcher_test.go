package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// countingBuilder returns a Builder that counts invocations and signals each
// completed build on done.
func countingBuilder(count *atomic.Int32, done chan struct{}) Builder {
	return func(ctx context.Context) error {
		count.Add(1)
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	}
}

func waitForBuild(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rebuild")
	}
}

func TestWatcher_FileChange_TriggersRebuild(t *testing.T) {
	root := t.TempDir()
	pageDir := filepath.Join(root, "intro")
	require.NoError(t, os.MkdirAll(pageDir, 0755))

	var builds atomic.Int32
	done := make(chan struct{}, 1)

	w, err := NewWatcher(root, 50*time.Millisecond, countingBuilder(&builds, done))
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(pageDir, "index.md"), []byte("# Intro"), 0644))
	waitForBuild(t, done)
	require.GreaterOrEqual(t, builds.Load(), int32(1))
}

func TestWatcher_BurstOfChanges_CoalescesIntoOneRebuild(t *testing.T) {
	root := t.TempDir()
	pageDir := filepath.Join(root, "intro")
	require.NoError(t, os.MkdirAll(pageDir, 0755))

	var builds atomic.Int32
	done := make(chan struct{}, 1)

	w, err := NewWatcher(root, 200*time.Millisecond, countingBuilder(&builds, done))
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(pageDir, "index.md"), []byte("# Intro"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	waitForBuild(t, done)
	// Allow any stray timer to fire before asserting.
	time.Sleep(300 * time.Millisecond)
	require.Equal(t, int32(1), builds.Load())
}

func TestWatcher_NewPageDirectory_IsPickedUp(t *testing.T) {
	root := t.TempDir()

	var builds atomic.Int32
	done := make(chan struct{}, 1)

	w, err := NewWatcher(root, 50*time.Millisecond, countingBuilder(&builds, done))
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	newPage := filepath.Join(root, "fresh")
	require.NoError(t, os.MkdirAll(newPage, 0755))
	waitForBuild(t, done)

	// Files inside the new directory must also produce rebuilds.
	builds.Store(0)
	require.NoError(t, os.WriteFile(filepath.Join(newPage, "index.md"), []byte("# F"), 0644))
	waitForBuild(t, done)
	require.GreaterOrEqual(t, builds.Load(), int32(1))
}

func TestWatcher_TempFiles_Ignored(t *testing.T) {
	root := t.TempDir()

	var builds atomic.Int32
	done := make(chan struct{}, 1)

	w, err := NewWatcher(root, 50*time.Millisecond, countingBuilder(&builds, done))
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(root, "directory.json.tmp"), []byte("{}"), 0644))
	select {
	case <-done:
		t.Fatal("temp file write must not trigger a rebuild")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_Stop_IsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), time.Second, func(context.Context) error { return nil })
	require.NoError(t, err)

	w.Stop()
	w.Stop()
}

func TestScheduler_PeriodicRebuild_Fires(t *testing.T) {
	var builds atomic.Int32
	done := make(chan struct{}, 1)

	s, err := NewScheduler()
	require.NoError(t, err)
	defer s.Stop()

	_, err = s.SchedulePeriodicRebuild(context.Background(), 50*time.Millisecond, countingBuilder(&builds, done))
	require.NoError(t, err)
	s.Start()

	waitForBuild(t, done)
	require.GreaterOrEqual(t, builds.Load(), int32(1))
}
