package salesdash

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingRender(calls *int, html string) func() (string, error) {
	return func() (string, error) {
		*calls++
		return html, nil
	}
}

func TestChartCacheHitsWithinTTL(t *testing.T) {
	sched := NewManualScheduler(time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC))
	cache := NewChartCache(time.Second).WithClock(sched)
	calls := 0
	key := chartKey("trend", string(TabRevenue), "westeros", "abc")

	first, err := cache.GetOrRender(key, countingRender(&calls, "<div>trend</div>"))
	require.NoError(t, err)
	sched.Advance(500 * time.Millisecond)
	second, err := cache.GetOrRender(key, countingRender(&calls, "<div>other</div>"))
	require.NoError(t, err)

	assert.Equal(t, "<div>trend</div>", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1}, cache.Stats())

	sched.Advance(time.Second)
	_, err = cache.GetOrRender(key, countingRender(&calls, "<div>trend</div>"))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, cache.Stats().Misses)
}

func TestChartCacheSweepsExpiredOnStore(t *testing.T) {
	sched := NewManualScheduler(time.Time{})
	cache := NewChartCache(time.Second).WithClock(sched)
	calls := 0

	_, _ = cache.GetOrRender("trend:revenue", countingRender(&calls, "a"))
	_, _ = cache.GetOrRender("trend:units", countingRender(&calls, "b"))
	assert.Equal(t, 2, cache.Len())

	sched.Advance(2 * time.Second)
	_, _ = cache.GetOrRender("products:chalk", countingRender(&calls, "c"))
	assert.Equal(t, 1, cache.Len())

	cache.Purge()
	assert.Zero(t, cache.Len())
}

func TestChartCacheSkipsFailedRenders(t *testing.T) {
	cache := NewChartCache(time.Minute)
	_, err := cache.GetOrRender("trend", func() (string, error) { return "", errors.New("boom") })
	require.EqualError(t, err, "boom")
	assert.Zero(t, cache.Len())
}

func TestChartCacheDisabled(t *testing.T) {
	for name, cache := range map[string]*ChartCache{"zero ttl": NewChartCache(0), "nil": nil} {
		t.Run(name, func(t *testing.T) {
			calls := 0
			_, _ = cache.GetOrRender("trend", countingRender(&calls, "html"))
			_, _ = cache.GetOrRender("trend", countingRender(&calls, "html"))
			assert.Equal(t, 2, calls)
			assert.Zero(t, cache.Len())
		})
	}
}

func TestContentHashIsStable(t *testing.T) {
	a := contentHash(SampleDataset().Series)
	assert.Equal(t, a, contentHash(SampleDataset().Series))
	assert.NotEqual(t, a, contentHash(SampleDataset().Products))
	assert.Equal(t, "trend:revenue:chalk", chartKey("trend", "revenue", "chalk"))
}
