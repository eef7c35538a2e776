package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viewlens/viewlens/internal/extractor"
)

// Test Plan:
// 1. Test Get on an empty cache misses
// 2. Test Set then Get returns the stored result as a hit
// 3. Test changed content invalidates the entry and misses
// 4. Test entries expire after the TTL
// 5. Test Invalidate removes a single entry
// 6. Test Clear purges entries and resets counters
// 7. Test Stats reports hits, misses, and the hit rate
// 8. Test the LRU bound evicts the oldest entry
// 9. Test non-positive constructor arguments fall back to defaults

func testResult() *extractor.ExtractResult {
	return &extractor.ExtractResult{
		Components: []extractor.Component{{Kind: extractor.KindButton, Properties: map[string]any{"label": "x"}, Line: 1}},
		Errors:     []extractor.Diagnostic{},
		Views:      []extractor.ViewDecl{},
	}
}

func TestGetMissOnEmptyCache(t *testing.T) {
	t.Parallel()

	c := New(DefaultTTL, DefaultMaxEntries)
	result, ok := c.Get("a.py", []byte("content"))
	assert.False(t, ok)
	assert.Nil(t, result)
}

func TestSetThenGetHits(t *testing.T) {
	t.Parallel()

	c := New(DefaultTTL, DefaultMaxEntries)
	stored := testResult()
	content := []byte("b = Button()")

	c.Set("a.py", content, stored)
	got, ok := c.Get("a.py", content)
	require.True(t, ok)
	assert.Same(t, stored, got)
}

func TestChangedContentMisses(t *testing.T) {
	t.Parallel()

	c := New(DefaultTTL, DefaultMaxEntries)
	c.Set("a.py", []byte("old"), testResult())

	_, ok := c.Get("a.py", []byte("new"))
	assert.False(t, ok)

	// The stale entry is evicted, so the old content misses too.
	_, ok = c.Get("a.py", []byte("old"))
	assert.False(t, ok)
}

func TestEntriesExpireAfterTTL(t *testing.T) {
	t.Parallel()

	c := New(30*time.Second, DefaultMaxEntries)
	current := time.Now()
	c.now = func() time.Time { return current }

	content := []byte("content")
	c.Set("a.py", content, testResult())

	// Just inside the TTL: hit.
	current = current.Add(29 * time.Second)
	_, ok := c.Get("a.py", content)
	assert.True(t, ok)

	// Past the TTL: expired and evicted.
	current = current.Add(2 * time.Second)
	_, ok = c.Get("a.py", content)
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, 0, stats.CachedFiles)
}

func TestInvalidateRemovesEntry(t *testing.T) {
	t.Parallel()

	c := New(DefaultTTL, DefaultMaxEntries)
	content := []byte("content")
	c.Set("a.py", content, testResult())
	c.Set("b.py", content, testResult())

	c.Invalidate("a.py")

	_, ok := c.Get("a.py", content)
	assert.False(t, ok)
	_, ok = c.Get("b.py", content)
	assert.True(t, ok)
}

func TestClearResetsCounters(t *testing.T) {
	t.Parallel()

	c := New(DefaultTTL, DefaultMaxEntries)
	content := []byte("content")
	c.Set("a.py", content, testResult())
	c.Get("a.py", content)
	c.Get("missing.py", content)

	c.Clear()

	stats := c.Stats()
	assert.Equal(t, 0, stats.Hits)
	assert.Equal(t, 0, stats.Misses)
	assert.Equal(t, 0, stats.TotalRequests)
	assert.Equal(t, 0, stats.CachedFiles)
}

func TestStatsHitRate(t *testing.T) {
	t.Parallel()

	c := New(DefaultTTL, DefaultMaxEntries)
	content := []byte("content")
	c.Set("a.py", content, testResult())

	c.Get("a.py", content)   // hit
	c.Get("a.py", content)   // hit
	c.Get("missing.py", nil) // miss

	stats := c.Stats()
	assert.Equal(t, 2, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 3, stats.TotalRequests)
	assert.InDelta(t, 66.67, stats.HitRatePercent, 0.01)
	assert.Equal(t, 1, stats.CachedFiles)
}

func TestLRUBoundEvictsOldest(t *testing.T) {
	t.Parallel()

	c := New(DefaultTTL, 2)
	content := []byte("content")
	c.Set("a.py", content, testResult())
	c.Set("b.py", content, testResult())
	c.Set("c.py", content, testResult())

	_, ok := c.Get("a.py", content)
	assert.False(t, ok)
	_, ok = c.Get("c.py", content)
	assert.True(t, ok)
}

func TestConstructorDefaults(t *testing.T) {
	t.Parallel()

	c := New(0, 0)
	assert.Equal(t, DefaultTTL, c.ttl)

	// The default-size cache accepts entries without panicking.
	c.Set("a.py", []byte("x"), testResult())
	_, ok := c.Get("a.py", []byte("x"))
	assert.True(t, ok)
}
