// Package watcher re-runs extraction when a previewed source file
// changes on disk. Editors save through renames and truncations, so the
// watch is placed on the containing directory and filtered to the file.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher notifies a callback when one source file changes.
type FileWatcher interface {
	// Start begins watching. The callback fires after the debounce quiet
	// period following a burst of writes.
	Start(ctx context.Context, callback func()) error
	// Stop stops watching. Safe to call more than once.
	Stop() error
}

type fileWatcher struct {
	watcher      *fsnotify.Watcher
	path         string
	debounceTime time.Duration

	callback func()
	ctx      context.Context
	cancel   context.CancelFunc

	debounceTimer *time.Timer
	timerMu       sync.Mutex

	stopOnce sync.Once
	doneCh   chan struct{}
}

// NewFileWatcher creates a watcher for a single file.
func NewFileWatcher(path string, debounce time.Duration) (FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	return &fileWatcher{
		watcher:      w,
		path:         abs,
		debounceTime: debounce,
		doneCh:       make(chan struct{}),
	}, nil
}

func (fw *fileWatcher) Start(ctx context.Context, callback func()) error {
	if callback == nil {
		return nil
	}
	fw.callback = callback
	fw.ctx, fw.cancel = context.WithCancel(ctx)

	go fw.watch()
	return nil
}

func (fw *fileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		if fw.cancel != nil {
			fw.cancel()
			<-fw.doneCh
		} else {
			close(fw.doneCh)
		}
		err = fw.watcher.Close()
	})
	return err
}

// watch is the main event loop.
func (fw *fileWatcher) watch() {
	defer close(fw.doneCh)

	for {
		select {
		case <-fw.ctx.Done():
			fw.stopDebounceTimer()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(event) {
				continue
			}
			fw.resetDebounceTimer()

		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// fsnotify errors are transient on the platforms we support;
			// the next event for the file still arrives.
		}
	}
}

// relevant filters directory events down to writes, creates, and renames
// of the watched file.
func (fw *fileWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == fw.path
}

// resetDebounceTimer restarts the quiet period; the callback fires only
// after writes stop arriving.
func (fw *fileWatcher) resetDebounceTimer() {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.debounceTimer = time.AfterFunc(fw.debounceTime, func() {
		select {
		case <-fw.ctx.Done():
		default:
			fw.callback()
		}
	})
}

func (fw *fileWatcher) stopDebounceTimer() {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()
	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
		fw.debounceTimer = nil
	}
}
