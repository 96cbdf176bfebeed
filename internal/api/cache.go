package api

import (
	"os"
	"strconv"
	"sync"

	"github.com/tierscope/tierscope/pkg/assess"
)

// RunCache is a thread-safe LRU cache for loaded run documents. Run documents
// are immutable once graded, so entries never need invalidation.
type RunCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*cacheEntry
	order   []string // oldest first
}

type cacheEntry struct {
	run *assess.Run
}

// NewRunCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 50.
func NewRunCache(maxSize int) *RunCache {
	if maxSize <= 0 {
		maxSize = 50
	}
	return &RunCache{
		maxSize: maxSize,
		entries: make(map[string]*cacheEntry),
	}
}

// NewRunCacheFromEnv creates a cache with size from the RUN_CACHE_SIZE env var.
func NewRunCacheFromEnv() *RunCache {
	size := 50
	if v := os.Getenv("RUN_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewRunCache(size)
}

// Get retrieves a run from the cache, or nil if not found.
func (c *RunCache) Get(id string) *assess.Run {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[id]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(id)
	return entry.run
}

// Put adds a run to the cache, evicting the oldest if full.
func (c *RunCache) Put(id string, run *assess.Run) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; ok {
		c.entries[id] = &cacheEntry{run: run}
		c.moveToEnd(id)
		return
	}

	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[id] = &cacheEntry{run: run}
	c.order = append(c.order, id)
}

func (c *RunCache) moveToEnd(id string) {
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, id)
			return
		}
	}
}
