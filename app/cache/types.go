package cache

import (
	"time"

	"queryexplorer/app/interfaces"
)

// Logger interface for cache logging
type Logger = interfaces.Logger

// CacheEntry holds the rows produced for one query text
type CacheEntry struct {
	Rows       interfaces.RowSequence
	AccessTime int64
	CreateTime time.Time
}

// CacheStats contains cache statistics
type CacheStats struct {
	TotalEntries int     `json:"totalEntries"`
	MaxEntries   int     `json:"maxEntries"` // 0 means unbounded
	TotalRows    int     `json:"totalRows"`
	Hits         int64   `json:"hits"`
	Misses       int64   `json:"misses"`
	Evictions    int64   `json:"evictions"`
	HitRate      float64 `json:"hitRate"`
}

// Unbounded disables eviction; entries live for the whole session.
const Unbounded = 0
