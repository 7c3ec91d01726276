package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/slices"
)

// watchDebounce coalesces the bursts of events a single save produces.
const watchDebounce = 100 * time.Millisecond

// Watch calls onChange after any of paths is written, created, removed or
// renamed, until ctx is done. The parent directories are watched rather than
// the files themselves so that files which do not exist yet, or are replaced
// by an atomic save, are still picked up. onChange never runs concurrently
// with itself.
func Watch(ctx context.Context, paths []string, onChange func(), logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	targets := make([]string, 0, len(paths))
	var dirs []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = watcher.Close()
			return err
		}
		targets = append(targets, abs)

		dir := filepath.Dir(abs)
		if slices.Contains(dirs, dir) {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs = append(dirs, dir)
	}

	runWatcher(ctx, watcher, targets, onChange, logger)
	return nil
}

func runWatcher(ctx context.Context, watcher *fsnotify.Watcher, targets []string, onChange func(), logger *slog.Logger) {
	var (
		mu            sync.Mutex
		debounceTimer *time.Timer
	)
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !slices.Contains(targets, filepath.Clean(event.Name)) {
				continue
			}
			logger.Debug("data file changed", "path", event.Name, "op", event.Op.String())

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				if ctx.Err() != nil {
					return
				}
				mu.Lock()
				defer mu.Unlock()
				onChange()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error("file watcher error", "error", err)
		}
	}
}
