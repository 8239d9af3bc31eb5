// Package cache provides an LRU cache for compiled sequence expressions.
//
// Compiling an expression is pure, so caching by source string is always
// safe; the cache exists to avoid re-lexing and re-parsing hot expressions
// that are evaluated repeatedly against changing variable bindings.
package cache

import (
	"container/list"
	"sync"

	"github.com/maxjmartin/seqcontainer/pkg/types"
)

// Cache is a thread-safe LRU cache mapping expression source strings to
// their compiled form.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
	hits     uint64
	misses   uint64
}

type entry struct {
	source string
	expr   *types.Expression
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits   uint64
	Misses uint64
	Len    int
}

// New creates a cache holding at most capacity compiled expressions.
// Capacities below 1 are raised to 1.
func New(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the cached compilation of source, if present.
func (c *Cache) Get(source string) (*types.Expression, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[source]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.order.MoveToFront(el)
	return el.Value.(*entry).expr, true
}

// Set stores the compilation of source, evicting the least recently used
// entry when the cache is full.
func (c *Cache) Set(source string, expr *types.Expression) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(source, expr)
}

// GetOrCompile returns the cached compilation of source, invoking compile
// and caching its result on a miss. Compilation errors are not cached.
func (c *Cache) GetOrCompile(source string, compile func() (*types.Expression, error)) (*types.Expression, error) {
	if expr, ok := c.Get(source); ok {
		return expr, nil
	}

	// Compile outside the lock; concurrent misses on the same source may
	// compile twice, which is harmless.
	expr, err := compile()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(source, expr)
	return expr, nil
}

// Len returns the number of cached expressions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the maximum number of cached expressions.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of the hit/miss counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:   c.hits,
		Misses: c.misses,
		Len:    len(c.entries),
	}
}

// Clear removes all cached expressions. Counters are preserved.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element, c.capacity)
	c.order.Init()
}

// set inserts or refreshes an entry. Caller must hold c.mu.
func (c *Cache) set(source string, expr *types.Expression) {
	if el, ok := c.entries[source]; ok {
		el.Value.(*entry).expr = expr
		c.order.MoveToFront(el)
		return
	}

	if len(c.entries) >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry).source)
		}
	}

	c.entries[source] = c.order.PushFront(&entry{source: source, expr: expr})
}
