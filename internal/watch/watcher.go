// Package watch keeps the compiled index current while content is edited.
//
// A recursive fsnotify watcher on the content root coalesces change bursts
// with a debounce window and triggers full recompiles; there is no
// incremental path, every trigger recompiles from scratch.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/BooleanCube/notebook/internal/errors"
	"github.com/BooleanCube/notebook/internal/logfields"
)

// Builder performs one full recompile.
type Builder func(ctx context.Context) error

// Watcher monitors a content root and debounces rebuild triggers.
type Watcher struct {
	root     string
	debounce time.Duration
	builder  Builder

	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	trigger  chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the given content root.
func NewWatcher(root string, debounce time.Duration, builder Builder) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WatchSetupFailed(err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		fw.Close()
		return nil, errors.WatchSetupFailed(err)
	}

	return &Watcher{
		root:     absRoot,
		debounce: debounce,
		builder:  builder,
		watcher:  fw,
		stopChan: make(chan struct{}),
		trigger:  make(chan struct{}, 1),
	}, nil
}

// Start registers the content tree and launches the watch and rebuild loops.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addTree(w.root); err != nil {
		return err
	}

	slog.Info("Watching content root", logfields.Path(w.root))
	go w.watchLoop(ctx)
	go w.rebuildLoop(ctx)
	return nil
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	})
}

// addTree registers the root and every non-hidden subdirectory.
func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
	if err != nil {
		return errors.WatchSetupFailed(err)
	}
	return nil
}

// watchLoop converts filesystem events into rebuild triggers.
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.ignored(event.Name) {
				continue
			}
			// New page directories must be registered before their files
			// produce events.
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						slog.Warn("Failed to watch new directory",
							logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			slog.Debug("Content change detected",
				logfields.Path(event.Name),
				slog.String("op", event.Op.String()))
			w.triggerRebuild()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

// ignored filters events for hidden entries and the compiler's own temp files.
func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".tmp")
}

// triggerRebuild requests a rebuild without blocking; a pending trigger
// already covers this change.
func (w *Watcher) triggerRebuild() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// rebuildLoop debounces triggers and runs the builder. Rapid change bursts
// collapse into a single rebuild.
func (w *Watcher) rebuildLoop(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-w.trigger:
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			if err := w.builder(ctx); err != nil {
				// Watch mode keeps going; the previous index stays in place.
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}
