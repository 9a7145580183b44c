package salesdash

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// CacheStats counts cache lookups since the cache was built.
type CacheStats struct {
	Hits   int
	Misses int
}

// ChartCache keeps rendered charts for a fixed TTL, read against the
// scheduler clock so tests can expire entries deterministically.
type ChartCache struct {
	ttl   time.Duration
	clock func() time.Time

	mu     sync.Mutex
	charts map[string]renderedChart
	stats  CacheStats
}

type renderedChart struct {
	html     string
	storedAt time.Time
}

// NewChartCache builds a cache with the provided TTL. A non-positive TTL
// disables caching.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:    ttl,
		clock:  time.Now,
		charts: map[string]renderedChart{},
	}
}

// WithClock makes the cache read time from scheduler. Returns c for chaining.
func (c *ChartCache) WithClock(scheduler Scheduler) *ChartCache {
	if c != nil && scheduler != nil {
		c.clock = scheduler.Now
	}
	return c
}

// GetOrRender returns the chart stored under key, rendering it on a miss.
// Failed renders are not stored.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}
	if html, ok := c.lookup(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.store(key, html)
	return html, nil
}

// Len returns the number of stored charts, expired ones included.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.charts)
}

// Stats returns the hit and miss counters.
func (c *ChartCache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Purge drops every stored chart.
func (c *ChartCache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.charts = map[string]renderedChart{}
	c.mu.Unlock()
}

func (c *ChartCache) lookup(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	chart, ok := c.charts[key]
	if ok && c.fresh(chart, c.clock()) {
		c.stats.Hits++
		return chart.html, true
	}
	if ok {
		delete(c.charts, key)
	}
	c.stats.Misses++
	return "", false
}

func (c *ChartCache) store(key, html string) {
	now := c.clock()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, chart := range c.charts {
		if !c.fresh(chart, now) {
			delete(c.charts, k)
		}
	}
	c.charts[key] = renderedChart{html: html, storedAt: now}
}

func (c *ChartCache) fresh(chart renderedChart, now time.Time) bool {
	return now.Sub(chart.storedAt) <= c.ttl
}

// chartKey joins the parts that identify one rendered chart.
func chartKey(kind string, parts ...string) string {
	return kind + ":" + strings.Join(parts, ":")
}

// contentHash returns a deterministic hash of v's JSON form.
func contentHash(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
