package openweather

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
	"github.com/couchcryptid/agri-advisor-service/internal/observability"
)

// CachedProvider wraps a WeatherProvider with an in-memory LRU cache whose
// entries expire after a fixed TTL.
type CachedProvider struct {
	inner   domain.WeatherProvider
	cache   *lruCache
	ttl     time.Duration
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a weather provider.
func NewCachedProvider(inner domain.WeatherProvider, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		ttl:     ttl,
		metrics: metrics,
	}
}

// Current returns a cached sample for city when one is fresh, otherwise asks
// the inner provider. City names are matched case-insensitively.
func (c *CachedProvider) Current(ctx context.Context, city string) (domain.WeatherSample, error) {
	key := strings.ToLower(strings.TrimSpace(city))
	now := domain.Now()

	if e, ok := c.cache.get(key); ok {
		if now.Before(e.expires) {
			c.metrics.WeatherCache.WithLabelValues("hit").Inc()
			sample := e.value
			sample.City = city
			return sample, nil
		}
		c.cache.delete(key)
		c.metrics.WeatherCache.WithLabelValues("expired").Inc()
	} else {
		c.metrics.WeatherCache.WithLabelValues("miss").Inc()
	}

	sample, err := c.inner.Current(ctx, city)
	if err != nil {
		return sample, err
	}
	// Only cache real readings so a "city not found" can be retried.
	if !sample.IsZero() {
		c.cache.put(key, cached{value: sample, expires: now.Add(c.ttl)})
	}
	return sample, nil
}

type cached struct {
	value   domain.WeatherSample
	expires time.Time
}

// lruCache is a simple thread-safe LRU cache of weather samples.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value cached
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (cached, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return cached{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value cached) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.remove(e)
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
