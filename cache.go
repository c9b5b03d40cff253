package jsonschema

import (
	"container/list"
	"sync"

	"github.com/zero-day-ai/jsonschema/validator"
)

type cacheEntry struct {
	key string
	v   *validator.Validator
}

// lruCache maps canonical schema text to its validator, evicting the least
// recently used entry beyond size.
type lruCache struct {
	mu    sync.Mutex
	size  int
	order *list.List
	items map[string]*list.Element
}

func newLRUCache(size int) *lruCache {
	return &lruCache{
		size:  size,
		order: list.New(),
		items: make(map[string]*list.Element),
	}
}

func (c *lruCache) get(key string) (*validator.Validator, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).v, true
}

// add stores v under key and returns the evicted validator, if any.
func (c *lruCache) add(key string, v *validator.Validator) *validator.Validator {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value.(*cacheEntry).v = v
		c.order.MoveToFront(el)
		return nil
	}
	c.items[key] = c.order.PushFront(&cacheEntry{key: key, v: v})
	if c.order.Len() <= c.size {
		return nil
	}
	oldest := c.order.Back()
	c.order.Remove(oldest)
	entry := oldest.Value.(*cacheEntry)
	delete(c.items, entry.key)
	return entry.v
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
