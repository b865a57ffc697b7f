package gamesrv

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"vawter.tech/stopper"
)

// ModEvent carries a fresh scan snapshot from watching a mod tree
type ModEvent struct {
	Mods []Mod
	Err  error
}

// WatchCleanupFunc stops a watch and releases its resources
type WatchCleanupFunc func() error

// watchDebounce coalesces rapid filesystem changes into one rescan
const watchDebounce = 25 * time.Millisecond

// Watch observes the enabled and disabled trees of one kind and emits a
// fresh Scan snapshot whenever their contents change, debounced so a bulk
// copy produces a single event. Both roots are created if absent so the
// watch can outlive an empty install.
//
// The returned channel carries an initial snapshot immediately. The
// cleanup function must be called to stop the watch; cancelling ctx stops
// it as well.
func (r *Repo) Watch(ctx context.Context, kind ModKind) (<-chan ModEvent, WatchCleanupFunc, error) {
	roots := []string{r.EnabledRoot(kind), r.DisabledRoot(kind)}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, &OpError{Op: OpWatch, Path: r.ServerDir, Err: err}
	}

	for _, root := range roots {
		if err := mkdirAndWatch(watcher, root); err != nil {
			_ = watcher.Close()
			return nil, nil, &OpError{Op: OpWatch, Path: root, Err: err}
		}
	}

	ch := make(chan ModEvent, 10)

	sctx := stopper.WithContext(ctx)
	sctx.Defer(func() {
		_ = watcher.Close()
		close(ch)
	})

	cleanup := func() error {
		sctx.Stop(100 * time.Millisecond)
		return sctx.Wait()
	}

	var mu sync.Mutex
	var debouncer *time.Timer

	rescan := func() {
		if sctx.IsStopping() {
			return
		}

		mods, err := r.Scan(kind)
		event := ModEvent{Mods: mods, Err: err}

		if !sctx.IsStopping() {
			select {
			case ch <- event:
			case <-sctx.Stopping():
			}
		}
	}

	// Initial snapshot
	rescan()

	sctx.Go(func(sctx *stopper.Context) error {
		sctx.Defer(func() {
			mu.Lock()
			if debouncer != nil {
				debouncer.Stop()
			}
			mu.Unlock()
		})

		for !sctx.IsStopping() {
			select {
			case <-sctx.Stopping():
				return nil

			case _, ok := <-watcher.Events:
				if !ok {
					return nil
				}

				mu.Lock()
				if debouncer != nil {
					debouncer.Stop()
				}
				debouncer = time.AfterFunc(watchDebounce, rescan)
				mu.Unlock()

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil && !sctx.IsStopping() {
					select {
					case ch <- ModEvent{Err: err}:
					case <-sctx.Stopping():
						return nil
					}
				}
			}
		}
		return nil
	})

	return ch, cleanup, nil
}

func mkdirAndWatch(watcher *fsnotify.Watcher, root string) error {
	if err := os.MkdirAll(root, DirMode); err != nil {
		return err
	}
	return watcher.Add(root)
}
