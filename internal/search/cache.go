package search

import (
	"fmt"
	"sync"
	"time"

	"github.com/inkwell-labs/inkwell/internal/content"
)

// Cache is the live search index: an immutable snapshot of projected records
// with a fixed time-to-live. Each instance owns its own state, so tests and
// servers construct independent caches instead of sharing globals.
//
// A snapshot is replaced as a unit under the mutex; readers get the slice of
// an immutable build, never a partially written one.
type Cache struct {
	loader *content.Loader
	ttl    time.Duration

	// now is swappable in tests.
	now func() time.Time

	mu       sync.Mutex
	records  []Record
	articles []content.Article
	stamp    time.Time
}

// NewCache returns a cold cache over the given loader.
func NewCache(loader *content.Loader, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{loader: loader, ttl: ttl, now: time.Now}
}

// Records returns the cached projection, rebuilding from source files when
// the snapshot is cold or older than the TTL. On a rebuild failure the cache
// is cleared before the error is returned, so the next request retries a
// full build instead of serving a poisoned empty snapshot.
func (c *Cache) Records() ([]Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.records != nil && c.now().Sub(c.stamp) < c.ttl {
		return c.records, nil
	}

	articles, err := c.loader.Load()
	if err != nil {
		c.clearLocked()
		return nil, fmt.Errorf("rebuild search index: %w", err)
	}

	c.records = Project(articles)
	c.articles = articles
	c.stamp = c.now()
	return c.records, nil
}

// Articles returns the corpus snapshot backing the current cache window,
// loading it on the same TTL schedule as Records. The returned slice is the
// cache's own; callers must not mutate it.
func (c *Cache) Articles() ([]content.Article, error) {
	if _, err := c.Records(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.articles, nil
}

// Invalidate clears the snapshot unconditionally. The next read rebuilds.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

// Age reports how old the current snapshot is, or false when cold.
func (c *Cache) Age() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.records == nil {
		return 0, false
	}
	return c.now().Sub(c.stamp), true
}

func (c *Cache) clearLocked() {
	c.records = nil
	c.articles = nil
	c.stamp = time.Time{}
}

// SetNow overrides the cache's clock. Test hook.
func (c *Cache) SetNow(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
