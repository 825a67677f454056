package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch re-runs the pipeline whenever a CSV file in dir is written or
// created. Events are debounced so a multi-file refresh triggers one run.
// Blocks until the context is cancelled.
func (p *Pipeline) Watch(ctx context.Context, dir string, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	p.logger.Info("watching data directory", "dir", dir, "debounce", debounce)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDataChange(ev) {
				continue
			}
			p.logger.Info("data change detected", "file", ev.Name, "op", ev.Op.String())
			pending = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.logger.Error("watch error", "error", err)

		case <-pending:
			pending = nil
			if err := p.RunOnce(ctx); err != nil {
				p.logger.Error("re-run after data change failed", "error", err)
			}
		}
	}
}

func isDataChange(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return strings.HasSuffix(strings.ToLower(ev.Name), ".csv")
}
