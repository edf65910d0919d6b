package render

import (
	"container/list"
	"sync"

	"golang.org/x/image/font"
)

// lruEntry is a single cache slot: a font face and the key it lives under.
type lruEntry struct {
	key  string
	face font.Face
}

// fontLRU is a thread-safe least-recently-used cache for font.Face objects.
// Usage order is tracked with a doubly linked list; when capacity is
// exceeded the least recently used face is evicted and, if it implements
// Close(), closed.
type fontLRU struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List
}

// newFontLRU creates an LRU cache with the given capacity, minimum 1.
func newFontLRU(capacity int) *fontLRU {
	if capacity < 1 {
		capacity = 1
	}
	return &fontLRU{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// get retrieves a face by key, marking it as recently used.
func (c *fontLRU) get(key string) (font.Face, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToBack(el)
		return el.Value.(*lruEntry).face, true
	}
	return nil, false
}

// put inserts or updates a face under key, evicting the oldest entry when
// the cache is full.
func (c *fontLRU) put(key string, face font.Face) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.order.MoveToBack(el)
		el.Value.(*lruEntry).face = face
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Front()
		if oldest != nil {
			ent := oldest.Value.(*lruEntry)
			if closer, ok := ent.face.(interface{ Close() error }); ok {
				_ = closer.Close()
			}
			delete(c.items, ent.key)
			c.order.Remove(oldest)
		}
	}

	el := c.order.PushBack(&lruEntry{key: key, face: face})
	c.items[key] = el
}

// clear removes all entries, closing any face that supports it.
func (c *fontLRU) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, el := range c.items {
		ent := el.Value.(*lruEntry)
		if closer, ok := ent.face.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}

	c.items = make(map[string]*list.Element)
	c.order.Init()
}
