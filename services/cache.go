package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is an explicit key -> freshness-timestamp map over fetched API
// responses. A value is served without refetching while it is younger than
// staleAfter, and dropped entirely once it has gone unused for evictAfter.
// Identical keys requested while a fetch is already in flight share that
// fetch instead of issuing a duplicate request.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	group   singleflight.Group

	staleAfter time.Duration
	evictAfter time.Duration

	now func() time.Time
}

type cacheEntry struct {
	value     interface{}
	fetchedAt time.Time
	lastUsed  time.Time
}

func NewCache(staleAfter, evictAfter time.Duration) *Cache {
	return &Cache{
		entries:    make(map[string]*cacheEntry),
		staleAfter: staleAfter,
		evictAfter: evictAfter,
		now:        time.Now,
	}
}

// Fetch returns the cached value under key when it is still fresh, otherwise
// runs fetch and caches the result. A failed fetch leaves any previously
// cached value in place, so stale-but-valid data survives transient errors.
func (c *Cache) Fetch(ctx context.Context, key string, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < c.staleAfter {
		e.lastUsed = c.now()
		value := e.value
		c.mu.Unlock()
		return value, nil
	}
	c.mu.Unlock()

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another caller may have completed the same fetch while this
		// one waited on the flight group.
		c.mu.Lock()
		if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < c.staleAfter {
			e.lastUsed = c.now()
			value := e.value
			c.mu.Unlock()
			return value, nil
		}
		c.mu.Unlock()

		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = &cacheEntry{
			value:     value,
			fetchedAt: c.now(),
			lastUsed:  c.now(),
		}
		c.mu.Unlock()
		return value, nil
	})
	return value, err
}

// Invalidate drops every key equal to one of the given collection prefixes or
// namespaced under it. The next access refetches from the server.
func (c *Cache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		for _, prefix := range prefixes {
			if key == prefix || strings.HasPrefix(key, prefix+"|") {
				delete(c.entries, key)
				break
			}
		}
	}
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StartSweeper evicts idle entries on the given interval until ctx is done.
func (c *Cache) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := c.sweep(); n > 0 {
					log.Printf("cache: evicted %d idle entries", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (c *Cache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, e := range c.entries {
		if c.now().Sub(e.lastUsed) > c.evictAfter {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}
