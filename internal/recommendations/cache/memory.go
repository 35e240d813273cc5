package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	payload []byte
	expires time.Time
}

// MemoryCache is the in-process stand-in for RedisCache.
type MemoryCache struct {
	TTL time.Duration
	Now func() time.Time

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemory(ttl time.Duration) *MemoryCache {
	return &MemoryCache{TTL: ttl, entries: map[string]memoryEntry{}}
}

func (c *MemoryCache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *MemoryCache) GetJSON(_ context.Context, userID string, limit int, dest any) (bool, error) {
	key := Key(userID, limit)
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if c.TTL > 0 && !c.now().Before(entry.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryCache) SetJSON(_ context.Context, userID string, limit int, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[string]memoryEntry{}
	}
	c.entries[Key(userID, limit)] = memoryEntry{payload: payload, expires: c.now().Add(c.TTL)}
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context, userID string) error {
	prefix := userPrefix(userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}
