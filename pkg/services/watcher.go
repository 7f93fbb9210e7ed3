package services

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Editors replace files rather than writing in place, so a short
// settle window collapses the burst of events one save produces.
const reloadDebounce = 500 * time.Millisecond

// Watch reloads the catalog from path whenever the file changes. It
// blocks until ctx is cancelled. The containing directory is watched,
// not the file itself, so atomic-save editors keep working.
func (c *Catalog) Watch(ctx context.Context, path string) error {
	if err := c.Reload(path); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	target := filepath.Base(path)
	var timer *time.Timer
	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Reset(reloadDebounce)
			} else {
				timer = time.NewTimer(reloadDebounce)
				settle = timer.C
			}

		case <-settle:
			timer = nil
			settle = nil
			if err := c.Reload(path); err != nil {
				c.logger.Error("catalog reload failed",
					slog.String("path", path),
					slog.Any("error", err))
				continue
			}
			c.logger.Info("catalog reloaded", slog.String("path", path))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Error("catalog watcher error", slog.Any("error", err))
		}
	}
}
