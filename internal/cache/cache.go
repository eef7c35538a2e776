// Package cache memoizes extraction results keyed by file identity and
// validated by a content hash plus a time-to-live. The cache is explicitly
// constructed and handed to whatever driver needs it; callers without one
// simply re-run extraction every time.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/viewlens/viewlens/internal/extractor"
)

const (
	// DefaultTTL is how long an entry stays valid after it was stored.
	DefaultTTL = 30 * time.Second
	// DefaultMaxEntries bounds the number of cached files.
	DefaultMaxEntries = 128
)

type entry struct {
	contentHash string
	result      *extractor.ExtractResult
	timestamp   time.Time
}

// ResultCache is process-wide shared state; all operations take an
// internal lock so concurrent extractions may share one instance.
type ResultCache struct {
	mu      sync.Mutex
	entries *lru.Cache[string, *entry]
	ttl     time.Duration
	hits    int
	misses  int

	// now is swapped in tests to exercise TTL expiry deterministically.
	now func() time.Time
}

// New creates a result cache with the given TTL and entry bound.
// Non-positive arguments fall back to the defaults.
func New(ttl time.Duration, maxEntries int) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	entries, err := lru.New[string, *entry](maxEntries)
	if err != nil {
		// lru.New only fails on a non-positive size, which is guarded above.
		panic(err)
	}
	return &ResultCache{
		entries: entries,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached result for fileID if the stored content hash
// matches the current content and the entry has not outlived the TTL.
// Any mismatch evicts the stale entry and counts as a miss.
func (c *ResultCache) Get(fileID string, content []byte) (*extractor.ExtractResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(fileID)
	if !ok {
		c.misses++
		return nil, false
	}
	if e.contentHash != hashContent(content) {
		c.entries.Remove(fileID)
		c.misses++
		return nil, false
	}
	if c.now().Sub(e.timestamp) > c.ttl {
		c.entries.Remove(fileID)
		c.misses++
		return nil, false
	}
	c.hits++
	return e.result, true
}

// Set stores or overwrites the result for fileID with a fresh timestamp.
func (c *ResultCache) Set(fileID string, content []byte, result *extractor.ExtractResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Add(fileID, &entry{
		contentHash: hashContent(content),
		result:      result,
		timestamp:   c.now(),
	})
}

// Invalidate removes one file's entry, if present.
func (c *ResultCache) Invalidate(fileID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Remove(fileID)
}

// Clear removes all entries and resets the hit/miss counters.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Purge()
	c.hits = 0
	c.misses = 0
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits           int     `json:"hits"`
	Misses         int     `json:"misses"`
	TotalRequests  int     `json:"total_requests"`
	HitRatePercent float64 `json:"hit_rate_percent"`
	CachedFiles    int     `json:"cached_files"`
}

// Stats returns a snapshot of the current counters.
func (c *ResultCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total) * 100
	}
	return Stats{
		Hits:           c.hits,
		Misses:         c.misses,
		TotalRequests:  total,
		HitRatePercent: rate,
		CachedFiles:    c.entries.Len(),
	}
}

// hashContent returns the SHA-256 hash of the content as hex.
func hashContent(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}
