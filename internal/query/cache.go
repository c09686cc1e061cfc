package query

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the value for one key from the network.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	data      any
	fetchedAt time.Time
	staleTime time.Duration
}

func (e *entry) fresh(now time.Time) bool {
	return now.Sub(e.fetchedAt) < e.staleTime
}

// Cache avoids redundant network calls for identical queries. Concurrent
// reads for one key are coalesced into a single fetch; completed reads serve
// from memory inside their staleTime window; reads past the window return
// the last known value and refresh in the background (stale-while-revalidate).
// Mutations invalidate by key prefix, and only after they succeed — callers
// enforce that ordering.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*entry
	refreshing map[string]bool
	sf         singleflight.Group

	maxEntries int
}

func NewCache() *Cache {
	return &Cache{
		entries:    make(map[string]*entry),
		refreshing: make(map[string]bool),
		maxEntries: 256,
	}
}

// Key builds the composite cache key from a resource name and its active
// params, e.g. Key("admin/applications", "REVIEWING", "Nexon").
func Key(resource string, params ...string) string {
	if len(params) == 0 {
		return resource
	}
	return resource + "|" + strings.Join(params, "|")
}

// Get returns the value for key, fetching at most once no matter how many
// callers arrive while the fetch is in flight. A failed fetch is never
// stored; the next read retries.
func (c *Cache) Get(ctx context.Context, key string, staleTime time.Duration, fetch FetchFunc) (any, error) {
	now := time.Now()

	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && e.fresh(now) {
		c.mu.Unlock()
		return e.data, nil
	}
	if ok {
		// Stale: serve the old value, refresh behind the caller's back.
		c.kickRefresh(key, staleTime, fetch)
		data := e.data
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	v, err, _ := c.sf.Do(key, func() (any, error) {
		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.put(key, data, staleTime)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Peek returns the cached value without fetching or refreshing.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.data, true
}

// Invalidate drops every entry whose key starts with prefix and returns how
// many were dropped. The next read of those keys refetches.
func (c *Cache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// kickRefresh runs under c.mu.
func (c *Cache) kickRefresh(key string, staleTime time.Duration, fetch FetchFunc) {
	if c.refreshing[key] {
		return
	}
	c.refreshing[key] = true

	go func() {
		// Detached from the triggering read; a navigated-away caller must
		// not cancel the refresh for everyone else.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		data, err := fetch(ctx)

		c.mu.Lock()
		delete(c.refreshing, key)
		c.mu.Unlock()

		if err != nil {
			// Keep serving the stale value; next stale read retries.
			log.Printf("level=warn msg=\"background refresh failed\" key=%s err=%v", key, err)
			return
		}
		c.put(key, data, staleTime)
	}()
}

func (c *Cache) put(key string, data any, staleTime time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{
		data:      data,
		fetchedAt: time.Now(),
		staleTime: staleTime,
	}

	// Crude GC: drop the oldest entries once over the cap.
	for len(c.entries) > c.maxEntries {
		oldestKey := ""
		var oldestAt time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.fetchedAt.Before(oldestAt) {
				oldestKey, oldestAt = k, e.fetchedAt
			}
		}
		delete(c.entries, oldestKey)
	}
}

// GetAs fetches through cache and asserts the concrete type at the boundary.
func GetAs[T any](ctx context.Context, c *Cache, key string, staleTime time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Get(ctx, key, staleTime, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return out, nil
}
