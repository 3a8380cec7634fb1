package openweather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
	"github.com/couchcryptid/agri-advisor-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingProvider struct {
	calls  int
	result domain.WeatherSample
	err    error
}

func (m *countingProvider) Current(_ context.Context, city string) (domain.WeatherSample, error) {
	m.calls++
	if m.err != nil {
		return domain.WeatherSample{}, m.err
	}
	if m.result.IsZero() {
		return m.result, nil
	}
	s := m.result
	s.City = city
	return s, nil
}

func reading() domain.WeatherSample {
	return domain.WeatherSample{Temperature: 28, Humidity: 70, Source: domain.SourceOpenWeather, Timestamp: domain.Timestamp(frozen)}
}

// --- CachedProvider tests ---

func TestCachedProvider_Hit(t *testing.T) {
	freezeClock(t)
	inner := &countingProvider{result: reading()}
	m := observability.NewMetricsForTesting()
	cached := NewCachedProvider(inner, 10, time.Minute, m)

	w1, err := cached.Current(context.Background(), "Pune")
	require.NoError(t, err)
	w2, err := cached.Current(context.Background(), "pune ")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.Equal(t, "Pune", w1.City)
	assert.Equal(t, "pune ", w2.City, "hit reports the caller's spelling")
	assert.Equal(t, w1.Temperature, w2.Temperature)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WeatherCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WeatherCache.WithLabelValues("miss")))
}

func TestCachedProvider_Expiry(t *testing.T) {
	fc := freezeClock(t)
	inner := &countingProvider{result: reading()}
	m := observability.NewMetricsForTesting()
	cached := NewCachedProvider(inner, 10, time.Minute, m)

	_, _ = cached.Current(context.Background(), "Pune")
	fc.Advance(59 * time.Second)
	_, _ = cached.Current(context.Background(), "Pune")
	assert.Equal(t, 1, inner.calls)

	fc.Advance(time.Second)
	_, _ = cached.Current(context.Background(), "Pune")
	assert.Equal(t, 2, inner.calls, "entry expires at the TTL boundary")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WeatherCache.WithLabelValues("expired")))
}

func TestCachedProvider_DifferentKeysMiss(t *testing.T) {
	freezeClock(t)
	inner := &countingProvider{result: reading()}
	cached := NewCachedProvider(inner, 10, time.Minute, observability.NewMetricsForTesting())

	_, _ = cached.Current(context.Background(), "Pune")
	_, _ = cached.Current(context.Background(), "Nashik")

	assert.Equal(t, 2, inner.calls)
}

func TestCachedProvider_EmptyNotCached(t *testing.T) {
	freezeClock(t)
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, 10, time.Minute, observability.NewMetricsForTesting())

	_, _ = cached.Current(context.Background(), "Atlantis")
	_, _ = cached.Current(context.Background(), "Atlantis")

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, cached.cache.len())
}

func TestCachedProvider_ErrorNotCached(t *testing.T) {
	freezeClock(t)
	boom := errors.New("boom")
	inner := &countingProvider{err: boom}
	cached := NewCachedProvider(inner, 10, time.Minute, observability.NewMetricsForTesting())

	_, err := cached.Current(context.Background(), "Pune")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, cached.cache.len())
}

// --- LRU cache unit tests ---

func entryFor(temp float64) cached {
	return cached{value: domain.WeatherSample{Temperature: temp}}
}

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", entryFor(1))
	c.put("b", entryFor(2))

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, 1.0, result.value.Temperature)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", entryFor(1))
	c.put("b", entryFor(2))
	c.put("c", entryFor(3)) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, 2.0, result.value.Temperature)

	result, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, 3.0, result.value.Temperature)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", entryFor(1))
	c.put("b", entryFor(2))

	c.get("a")

	// "b" is now least recently used.
	c.put("c", entryFor(3))

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", entryFor(1))
	c.put("a", entryFor(2))

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, 2.0, result.value.Temperature)
	assert.Equal(t, 1, c.len())
}

func TestLRUCache_Delete(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", entryFor(1))
	c.put("b", entryFor(2))
	c.delete("a")
	c.delete("missing")

	_, ok := c.get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.len())

	c.put("c", entryFor(3))
	c.put("d", entryFor(4))
	_, ok = c.get("b")
	assert.True(t, ok, "delete must keep the list consistent")
}
