// Package watcher monitors the content directory and invalidates the live
// search cache when article files change, so serve mode reflects edits
// without waiting out the TTL.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/inkwell-labs/inkwell/internal/search"
)

const debounceDelay = 2 * time.Second

// Watch blocks, invalidating cache whenever an article file under dir is
// created, written, renamed, or removed. Bursts of events (editors write
// several times per save) collapse into one invalidation per debounce window.
func Watch(dir string, cache *search.Cache) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	fmt.Fprintf(os.Stderr, "Watching %s for article changes\n", dir)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)

	invalidate := func() {
		cache.Invalidate()
		fmt.Fprintf(os.Stderr, "  Content changed, search cache invalidated\n")
	}

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isArticleFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, invalidate)
			mu.Unlock()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "  [WARN] watcher: %v\n", err)
		}
	}
}

func isArticleFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".mdx" || ext == ".md"
}
