package memory

import (
	"context"
	"sync"

	"github.com/aretw0/decompose/pkg/domain"
)

// Cache implements ports.DisambiguationCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string][]string
	mu   sync.RWMutex
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]string),
	}
}

// Put stores a copy of the sentences.
func (c *Cache) Put(ctx context.Context, key string, sentences []string) error {
	copied := append([]string{}, sentences...)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = copied
	return nil
}

// Get returns a copy so callers can't mutate cached entries.
func (c *Cache) Get(ctx context.Context, key string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sentences, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return append([]string{}, sentences...), nil
}

// Len returns the number of cached stories.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
