package dataset

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Cache memoizes loaded datasets keyed by source identity. Aggregates,
// forecasts and RFM scores are deliberately not cached; only the parse of
// the raw source is.
type Cache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem struct {
	key       string
	data      *Dataset
	expiresAt time.Time
}

// NewCache creates an LRU dataset cache with TTL-based expiry.
func NewCache(maxSize int, ttl time.Duration) *Cache {
	return &Cache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// Get retrieves a dataset from the cache.
func (c *Cache) Get(key string) (*Dataset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[key]
	if !exists {
		return nil, false
	}

	item := elem.Value.(*cacheItem)
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return nil, false
	}

	c.lru.MoveToFront(elem)
	return item.data, true
}

// Set stores a dataset in the cache.
func (c *Cache) Set(key string, data *Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Size returns the current number of cached datasets.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cache) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem)
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

var (
	processCache     *Cache
	processCacheOnce sync.Once
)

// ProcessCache returns the lazily initialized process-wide dataset cache.
// The size and TTL of the first call stick; later calls return the same
// cache. No teardown is needed: the cache lives for the process lifetime.
func ProcessCache(maxSize int, ttl time.Duration) *Cache {
	processCacheOnce.Do(func() {
		processCache = NewCache(maxSize, ttl)
	})
	return processCache
}

// Loader combines a source with a cache. The zero cache means no memoization.
type Loader struct {
	Source Source
	Cache  *Cache
}

// Load returns the cached dataset for the source's current identity, loading
// and memoizing it on a miss.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	if l.Cache == nil {
		return l.Source.Load(ctx)
	}

	key, err := l.Source.Identity()
	if err != nil {
		return nil, err
	}
	if ds, ok := l.Cache.Get(key); ok {
		return ds, nil
	}

	ds, err := l.Source.Load(ctx)
	if err != nil {
		return nil, err
	}
	l.Cache.Set(key, ds)
	return ds, nil
}
