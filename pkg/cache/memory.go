package cache

import (
	"sync"

	"github.com/parcelshield/shieldkit/core"
)

// CollectionCache holds the most recently loaded admin collection per
// kind. It backs optimistic removal: a successful delete updates the
// cached collection and re-renders from it instead of re-fetching.
type CollectionCache struct {
	mu    sync.RWMutex
	items map[core.Kind][]core.ContentItem
}

// NewCollectionCache creates an empty per-kind collection cache.
func NewCollectionCache() *CollectionCache {
	return &CollectionCache{
		items: make(map[core.Kind][]core.ContentItem),
	}
}

// Replace stores a freshly loaded collection for a kind.
func (c *CollectionCache) Replace(kind core.Kind, items []core.ContentItem) {
	copied := make([]core.ContentItem, len(items))
	copy(copied, items)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[kind] = copied
}

// Get returns a copy of the cached collection for a kind.
func (c *CollectionCache) Get(kind core.Kind) []core.ContentItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := c.items[kind]
	copied := make([]core.ContentItem, len(items))
	copy(copied, items)
	return copied
}

// Remove drops one item from the cached collection and returns a copy
// of the updated collection. Unknown ids leave the cache unchanged.
func (c *CollectionCache) Remove(kind core.Kind, id int64) []core.ContentItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.items[kind]
	filtered := make([]core.ContentItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	c.items[kind] = filtered

	copied := make([]core.ContentItem, len(filtered))
	copy(copied, filtered)
	return copied
}

// Len returns the cached collection size for a kind.
func (c *CollectionCache) Len(kind core.Kind) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items[kind])
}

// Clear drops every cached collection.
func (c *CollectionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[core.Kind][]core.ContentItem)
}
