package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"queryexplorer/app/interfaces"
)

// Cache maps exact query text to the rows a previous run produced.
// By default it never evicts; a positive entry limit turns on LRU eviction.
type Cache struct {
	storage    map[string]*CacheEntry
	maxEntries int
	lru        *LRUList
	mutex      sync.Mutex
	logger     Logger

	// Performance counters
	hits      int64
	misses    int64
	evictions int64
}

// NewCache creates a new cache. maxEntries of Unbounded disables eviction.
func NewCache(maxEntries int) *Cache {
	return NewCacheWithLogger(maxEntries, nil)
}

// NewCacheWithLogger creates a new cache with a logger
func NewCacheWithLogger(maxEntries int, logger Logger) *Cache {
	if maxEntries < 0 {
		maxEntries = Unbounded
	}
	return &Cache{
		storage:    make(map[string]*CacheEntry),
		maxEntries: maxEntries,
		lru:        NewLRUList(),
		logger:     logger,
	}
}

// SetLogger sets the logger for the cache
func (c *Cache) SetLogger(logger Logger) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.logger = logger
}

// Get returns the rows cached for text and marks the entry as recently used
func (c *Cache) Get(text string) (interfaces.RowSequence, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.storage[text]
	if !exists {
		atomic.AddInt64(&c.misses, 1)
		c.log("debug", fmt.Sprintf("[CACHE_MISS] Key: %s", logKey(text)))
		return nil, false
	}

	atomic.AddInt64(&c.hits, 1)
	entry.AccessTime = time.Now().Unix()
	c.lru.Touch(text)
	c.log("debug", fmt.Sprintf("[CACHE_HIT] Key: %s, Rows: %d", logKey(text), len(entry.Rows)))
	return entry.Rows, true
}

// Put stores rows under text, replacing any previous entry for the same text
func (c *Cache) Put(text string, rows interfaces.RowSequence) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	c.storage[text] = &CacheEntry{
		Rows:       rows,
		AccessTime: now.Unix(),
		CreateTime: now,
	}
	c.lru.Touch(text)
	c.evictOverflow()

	c.log("debug", fmt.Sprintf("[CACHE_STORE] Key: %s, Rows: %d, Entries: %d", logKey(text), len(rows), len(c.storage)))
}

// Remove drops the entry for text, if any
func (c *Cache) Remove(text string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.storage, text)
	c.lru.Remove(text)
}

// Clear removes every entry. Counters are kept.
func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.storage = make(map[string]*CacheEntry)
	c.lru = NewLRUList()
	c.log("debug", "[CACHE_CLEARED] All entries removed")
}

// EntryCount returns the number of cached query texts
func (c *Cache) EntryCount() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.storage)
}

// UpdateMaxEntries changes the entry limit and evicts down to it
func (c *Cache) UpdateMaxEntries(maxEntries int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if maxEntries < 0 {
		maxEntries = Unbounded
	}
	old := c.maxEntries
	c.maxEntries = maxEntries
	c.log("info", fmt.Sprintf("[CACHE_RESIZE] Entry limit updated from %d to %d", old, maxEntries))
	c.evictOverflow()
}

// GetCacheStats returns the current cache statistics
func (c *Cache) GetCacheStats() CacheStats {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	stats := CacheStats{
		TotalEntries: len(c.storage),
		MaxEntries:   c.maxEntries,
		Hits:         atomic.LoadInt64(&c.hits),
		Misses:       atomic.LoadInt64(&c.misses),
		Evictions:    atomic.LoadInt64(&c.evictions),
	}
	for _, entry := range c.storage {
		stats.TotalRows += len(entry.Rows)
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}

// evictOverflow drops least recently used entries past the limit.
// Caller holds c.mutex.
func (c *Cache) evictOverflow() {
	if c.maxEntries == Unbounded {
		return
	}
	for len(c.storage) > c.maxEntries {
		oldest, ok := c.lru.RemoveOldest()
		if !ok {
			return
		}
		delete(c.storage, oldest)
		atomic.AddInt64(&c.evictions, 1)
		c.log("debug", fmt.Sprintf("[CACHE_EVICT] Key: %s", logKey(oldest)))
	}
}

func (c *Cache) log(level, message string) {
	if c.logger != nil {
		c.logger.Log(level, message)
	}
}
