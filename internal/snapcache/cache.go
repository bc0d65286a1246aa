// Package snapcache stores parsed snapshots between calls so large
// trees can be paginated without re-fetching or re-parsing.
package snapcache

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jacoelho/ariaq/internal/clock"
)

// DefaultTTL applies when no explicit TTL is given.
const DefaultTTL = 5 * time.Minute

// Entry is a cached snapshot. Expiration is sliding: an entry is
// inaccessible once TTL has elapsed since LastAccessedAt, and every
// successful Get pushes LastAccessedAt forward.
type Entry struct {
	Key            string
	SourceURL      string
	Snapshot       any
	CreatedAt      time.Time
	LastAccessedAt time.Time
	TTL            time.Duration
}

func (e *Entry) expired(now time.Time) bool {
	return now.Sub(e.LastAccessedAt) > e.TTL
}

// Cache is safe for concurrent use. Expired entries are swept lazily
// on Create and Get; there is no background reaper, so an entry can
// outlive its TTL in memory if the cache is never touched again.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*Entry
	defaultTTL time.Duration
	group      singleflight.Group
}

// New returns an empty cache. A non-positive defaultTTL falls back to
// DefaultTTL.
func New(defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache{
		entries:    make(map[string]*Entry),
		defaultTTL: defaultTTL,
	}
}

// Create stores a snapshot under a fresh unpredictable key and returns
// the key. A non-positive ttl uses the cache default.
func (c *Cache) Create(sourceURL string, snapshot any, ttl time.Duration) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := clock.Now()
	c.sweep(now)

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	key := newKey()
	c.entries[key] = &Entry{
		Key:            key,
		SourceURL:      sourceURL,
		Snapshot:       snapshot,
		CreatedAt:      now,
		LastAccessedAt: now,
		TTL:            ttl,
	}
	return key
}

// Get returns a copy of the entry under key and refreshes its access
// time. A miss or an expired entry reports false; neither is an error.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := clock.Now()
	c.sweep(now)

	entry, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}

	entry.LastAccessedAt = now
	return *entry, true
}

// GetOrCreate returns the key of an unexpired entry for sourceURL, or
// loads a snapshot once and stores it. Concurrent calls for the same
// source share a single load.
func (c *Cache) GetOrCreate(sourceURL string, ttl time.Duration, load func() (any, error)) (string, error) {
	key, err, _ := c.group.Do(sourceURL, func() (any, error) {
		if key, ok := c.lookupSource(sourceURL); ok {
			return key, nil
		}

		snapshot, err := load()
		if err != nil {
			return "", fmt.Errorf("load snapshot for %s: %w", sourceURL, err)
		}
		return c.Create(sourceURL, snapshot, ttl), nil
	})
	if err != nil {
		return "", err
	}
	return key.(string), nil
}

// Delete removes the entry under key and reports whether it existed.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
}

// Len returns the number of entries, including any not yet swept.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// lookupSource finds an unexpired entry by source and refreshes it.
func (c *Cache) lookupSource(sourceURL string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := clock.Now()
	for key, entry := range c.entries {
		if entry.SourceURL == sourceURL && !entry.expired(now) {
			entry.LastAccessedAt = now
			return key, true
		}
	}
	return "", false
}

// sweep removes expired entries; cost is linear in the number of
// entries. Callers must hold the lock.
func (c *Cache) sweep(now time.Time) {
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
		}
	}
}

func newKey() string {
	id := uuid.New()
	return fmt.Sprintf("snap_%x", id[:4])
}
