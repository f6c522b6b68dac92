package host

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch sends the contents of path every time it's written or recreated, until ctx is done. The directory is
// watched rather than the file so that editors that save by renaming over the original still trigger a reload.
// Only the most recent unread source is kept.
func Watch(ctx context.Context, path string, log *slog.Logger) (<-chan []byte, error) {
	if log == nil {
		log = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan []byte, 1)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					continue
				}
				src, err := os.ReadFile(abs)
				if err != nil {
					log.Warn("reading changed shader", "path", abs, "error", err)
					continue
				}
				// drop a stale unread source in favor of this one
				select {
				case <-out:
				default:
				}
				out <- src
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("shader watcher", "error", err)
			}
		}
	}()
	return out, nil
}
