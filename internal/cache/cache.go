package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Cache is a bounded TTL store of the last successful response per
// request key. Expiry is checked lazily on lookup; there is no sweep
// goroutine. Expired entries stay in place so the fallback chain can
// still read them as stale data, until the next Set overwrites them
// or the LRU evicts them.
type Cache struct {
	entries *lru.Cache[string, entry]
	ttl     time.Duration
}

func New(size int, ttl time.Duration) (*Cache, error) {
	entries, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}

	return &Cache{entries: entries, ttl: ttl}, nil
}

// Get returns the value stored under key if it is still within its
// TTL. Expired entries behave as a miss.
func (c *Cache) Get(key string) (any, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}

	if time.Since(e.storedAt) >= c.ttl {
		return nil, false
	}

	return deepCopy(e.value), true
}

// GetStale returns the value stored under key regardless of TTL.
// Used by the fallback chain to maximize availability.
func (c *Cache) GetStale(key string) (any, bool) {
	e, ok := c.entries.Peek(key)
	if !ok {
		return nil, false
	}

	return deepCopy(e.value), true
}

func (c *Cache) Set(key string, value any) {
	c.entries.Add(key, entry{value: deepCopy(value), storedAt: time.Now()})
}

func (c *Cache) Clear() {
	c.entries.Purge()
}

func (c *Cache) Len() int {
	return c.entries.Len()
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// deepCopy clones decoded JSON values (maps, slices, scalars) so the
// cached copy is isolated from callers mutating what they were handed.
func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}
