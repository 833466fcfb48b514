package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/logger"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/store"
)

// DefaultCacheSize is the number of documents kept in memory when no size
// is configured.
const DefaultCacheSize = 128

// Cache keeps registry documents in an in-memory LRU backed by an optional
// disk store. Keys are slash separated, e.g. "npm/@scope/pkg".
type Cache struct {
	memory *lru.Cache[string, []byte]
	disk   store.Store
	log    logger.Logger
}

// NewCache returns a cache holding up to size documents in memory. disk
// may be nil for a memory-only cache.
func NewCache(size int, disk store.Store, log logger.Logger) (*Cache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be greater than zero, got %d", size)
	}
	memory, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	return &Cache{memory: memory, disk: disk, log: logger.OrNop(log)}, nil
}

// Get looks the key up in memory, then on disk. A disk hit is promoted to
// memory.
func (c *Cache) Get(key string) ([]byte, bool) {
	if data, ok := c.memory.Get(key); ok {
		return data, true
	}
	if c.disk == nil {
		return nil, false
	}

	data, err := c.disk.Get(segments(key)...)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.log.Warn("reading cached document", "key", key, "err", err)
		}
		return nil, false
	}
	c.memory.Add(key, data)
	return data, true
}

// Add stores data in both tiers.
func (c *Cache) Add(key string, data []byte) error {
	c.memory.Add(key, data)
	if c.disk == nil {
		return nil
	}
	if err := c.disk.Put(data, segments(key)...); err != nil {
		return fmt.Errorf("caching %s: %w", key, err)
	}
	return nil
}

// GetOrFetch returns the cached document for key, calling fetch and caching
// its result on a miss. A failure to write the disk tier is logged and does
// not fail the lookup.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	if data, ok := c.Get(key); ok {
		c.log.Debug("cache hit", "key", key)
		return data, nil
	}

	data, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Add(key, data); err != nil {
		c.log.Warn("could not persist document", "key", key, "err", err)
	}
	return data, nil
}

// Remove evicts key from both tiers.
func (c *Cache) Remove(key string) error {
	c.memory.Remove(key)
	if c.disk == nil {
		return nil
	}
	return c.disk.Remove(segments(key)...)
}

// Purge clears the memory tier. Documents on disk are kept.
func (c *Cache) Purge() {
	c.memory.Purge()
}

// Len is the number of documents held in memory.
func (c *Cache) Len() int {
	return c.memory.Len()
}

func segments(key string) []string {
	return strings.Split(strings.Trim(key, "/"), "/")
}
